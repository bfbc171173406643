package profile

import (
	"context"
	"errors"
)

// ErrNoSource is returned by FirstSuccess when the source list is empty.
var ErrNoSource = errors.New("no profile source")

// Source is a single attempt to produce a value.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (T, error)
}

// Attempt records a failed source.
type Attempt struct {
	Source string
	Err    error
}

// FirstSuccess runs sources in order and returns the first value produced
// without error. Later sources are not called. On total failure it returns
// every attempt and the joined errors. Context cancellation stops the walk.
func FirstSuccess[T any](ctx context.Context, sources []Source[T]) (T, string, []Attempt, error) {
	var zero T
	if len(sources) == 0 {
		return zero, "", nil, ErrNoSource
	}

	attempts := make([]Attempt, 0, len(sources))
	errs := make([]error, 0, len(sources))
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, Attempt{Source: s.Name, Err: err})
			errs = append(errs, err)
			break
		}
		v, err := s.Fetch(ctx)
		if err == nil {
			return v, s.Name, attempts, nil
		}
		attempts = append(attempts, Attempt{Source: s.Name, Err: err})
		errs = append(errs, err)
	}
	return zero, "", attempts, errors.Join(errs...)
}
