// Package identity talks to the remote identity API.
//
// It exchanges credentials for a bearer token (Authenticate), looks up a
// user profile with that token (FetchProfile) and probes a token without
// side effects (ValidateToken). Profile lookups go either straight to the
// API or through the forwarding server, depending on the configured
// ProfileTransport; both produce the same errors.
//
// # Errors
//
// Outcomes are sentinel errors matched with errors.Is: ErrRejected and
// ErrMalformedResponse for authentication, ErrUnauthorized, ErrForbidden,
// ErrTransport and ErrMalformed for profile lookups. Failures that carry an
// HTTP status are wrapped in *StatusError.
//
// The package does not retry or cache; policy lives in package profile.
package identity
