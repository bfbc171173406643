package common

import "strings"

// WipeByteArray overwrites b with zeros. Used for password buffers read
// from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EmailLocalPart returns the part of an address before the first '@', or
// the whole string when there is no '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
