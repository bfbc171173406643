package identity

import (
	"context"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
)

// Client is the contract the session layer needs from the identity API.
type Client interface {
	Authenticate(ctx context.Context, email, password string) (AuthResult, error)
	FetchProfile(ctx context.Context, token, endpoint string) (models.UserProfile, error)
	ValidateToken(ctx context.Context, token string) Validation
}

// AuthResult is a successful credential exchange.
//
// Embedded is set when the token response also carried a user object
// (under "user", "userData" or "profile"); it may still lack an ID.
type AuthResult struct {
	Token    string
	Embedded *models.UserProfile
}

// Validation is the outcome of a token probe. Err is set only when the
// request itself could not be made.
type Validation struct {
	Valid      bool
	StatusCode int
	Status     string
	Err        error
}
