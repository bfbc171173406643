package logging

import (
	"strings"
	"unicode/utf8"
)

// Redactor decides how credential material appears in logs. With Reveal set
// values are logged as-is; otherwise tokens and emails are masked.
// Passwords never go through a Redactor and must not be logged at all.
type Redactor struct {
	Reveal bool
}

// Token masks a bearer token down to its first six characters.
func (r Redactor) Token(token string) string {
	if r.Reveal {
		return token
	}
	return Redact(token)
}

// Email masks the local part of an address, keeping the first character
// and the domain: "bob@example.com" -> "b***@example.com".
func (r Redactor) Email(email string) string {
	if r.Reveal {
		return email
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return Redact(email)
	}
	_, size := utf8.DecodeRuneInString(email)
	return email[:size] + "***" + email[at:]
}

// Redact keeps the first six characters of s and replaces the rest with "...".
func Redact(s string) string {
	const keep = 6
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= keep {
		return "***"
	}
	r := []rune(s)
	return string(r[:keep]) + "..."
}
