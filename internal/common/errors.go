package common

import "errors"

var (
	// ErrInvalidInput is returned when login input fails validation and no
	// request is attempted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoggedIn is returned by operations that need an active session.
	ErrNotLoggedIn = errors.New("not logged in")
)
