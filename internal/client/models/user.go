// Package models defines the client-side data shared by the identity
// client, the profile resolver, the session store and the views.
package models

import (
	"log/slog"
	"strings"
)

// Credentials is what the login form collects. It is never persisted and
// never logged.
type Credentials struct {
	Email    string
	Password string
}

// UserProfile is the resolved identity of the logged-in user.
//
// ID and Name are always populated once a profile reaches the session
// store. IsFallback marks a profile synthesized locally because no remote
// lookup succeeded; views must show that it is not authoritative.
type UserProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	IsFallback bool   `json:"isFallback,omitempty"`
}

// Identifies reports whether p carries enough to stand for a user without
// a further lookup.
func (p UserProfile) Identifies() bool {
	return strings.TrimSpace(p.ID) != "" || strings.TrimSpace(p.Email) != ""
}

// Merge returns p with every non-empty field of update applied on top.
// The fallback marker is taken from update only when update names a user.
func (p UserProfile) Merge(update UserProfile) UserProfile {
	if update.ID != "" {
		p.ID = update.ID
	}
	if update.Name != "" {
		p.Name = update.Name
	}
	if update.Email != "" {
		p.Email = update.Email
	}
	if update.Identifies() {
		p.IsFallback = update.IsFallback
	}
	return p
}

// LogValue keeps the email out of structured logs.
func (p UserProfile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", p.ID),
		slog.String("name", p.Name),
		slog.Bool("fallback", p.IsFallback),
	)
}
