// Package storage is the client's durable key/value store: the terminal
// counterpart of a browser's localStorage. It keeps a handful of small
// values (the bearer token under its legacy aliases) in a local SQLite file
// that survives restarts.
//
// Open creates or upgrades the schema with the embedded goose migrations.
// Multi-key updates go through DB.Atomically so aliases are written or
// cleared together.
package storage
