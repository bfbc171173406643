// Package mockidentity is a small stand-in for the remote identity API.
//
// It issues HS256 bearer tokens from POST /yeshtery/token for users with
// bcrypt-hashed passwords and serves the profile endpoints the client
// probes (/user/info and its alternatives). Individual endpoints can be
// switched to a fixed failure status so that the client's fallback paths
// can be exercised end to end. It is meant for local development and
// tests, not for production.
package mockidentity
