package storage

import (
	"context"
)

// Repository is a flat string-keyed store of byte values.
//
// Get returns (nil, nil) for a missing key. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Durable is a Repository that can also apply several writes as one unit.
type Durable interface {
	Repository
	Atomically(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
