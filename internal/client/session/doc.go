// Package session holds the client's authentication state.
//
// A single *Store per process is the source of truth for the current token,
// the resolved user, the in-flight flag and the last login error. The token
// is mirrored into durable storage under two keys ("token" and
// "accessToken") so that CheckAuth can restore it after a restart. Views
// read snapshots via State or Subscribe and never mutate state directly.
package session
