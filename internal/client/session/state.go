package session

import "github.com/dmitrijs2005/yeshlogin/internal/client/models"

// State is a snapshot of the session. A non-nil User implies a non-nil
// Token. Loading is only true while a login is in flight.
type State struct {
	Token   *string
	User    *models.UserProfile
	Loading bool
	Error   *string
}

// Authenticated reports whether a token is present.
func (s State) Authenticated() bool {
	return s.Token != nil
}

// clone returns a deep copy so that callers cannot reach the store's memory.
func (s State) clone() State {
	out := State{Loading: s.Loading}
	if s.Token != nil {
		t := *s.Token
		out.Token = &t
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return out
}
