package identity

import (
	"errors"
	"fmt"
)

var (
	// Authentication outcomes.
	ErrRejected          = errors.New("login failed")
	ErrMalformedResponse = errors.New("no token in response")

	// Profile lookup outcomes.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTransport    = errors.New("transport error")
	ErrMalformed    = errors.New("malformed profile response")
)

// StatusError carries the HTTP status and raw body of a failed call.
// It unwraps to one of the sentinel errors above.
type StatusError struct {
	Err        error
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%v: %d - %s", e.Err, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0 if it has none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// profileStatusError maps a non-2xx profile response to its sentinel.
func profileStatusError(status int, body string) error {
	switch status {
	case 401:
		return &StatusError{Err: ErrUnauthorized, StatusCode: status, Body: body}
	case 403:
		return &StatusError{Err: ErrForbidden, StatusCode: status, Body: body}
	default:
		return &StatusError{Err: ErrTransport, StatusCode: status, Body: body}
	}
}
