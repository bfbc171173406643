// Package profile resolves the user profile for a freshly issued token.
//
// Resolution is an ordered, short-circuiting list of sources: the profile
// embedded in the token response, the primary user-info endpoint, then a
// fixed list of alternative endpoints. When every source fails the
// resolver synthesizes a placeholder marked IsFallback so that a valid
// token is never rejected for want of a profile.
package profile
