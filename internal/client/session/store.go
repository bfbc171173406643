package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/yeshlogin/internal/client/identity"
	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
	"github.com/dmitrijs2005/yeshlogin/internal/client/profile"
	"github.com/dmitrijs2005/yeshlogin/internal/client/storage"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (identity.AuthResult, error)
}

// ProfileResolver is satisfied by *profile.Resolver.
type ProfileResolver interface {
	Resolve(ctx context.Context, token, email string, embedded *models.UserProfile) profile.Outcome
	Lookup(ctx context.Context, token string) (models.UserProfile, error)
	Complete(p models.UserProfile, email string) models.UserProfile
}

type Store struct {
	mu    sync.RWMutex
	state State

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int

	repo     storage.Durable
	auth     Authenticator
	resolver ProfileResolver
	message  func(error) string
	logger   logging.Logger
	redact   logging.Redactor
}

type Option func(*Store)

// WithMessage sets how a failed login is turned into State.Error.
// The default is err.Error().
func WithMessage(fn func(error) string) Option {
	return func(s *Store) {
		s.message = fn
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

func WithRedactor(r logging.Redactor) Option {
	return func(s *Store) {
		s.redact = r
	}
}

// NewStore returns an empty, unauthenticated store. Call CheckAuth to
// restore a persisted token.
func NewStore(repo storage.Durable, auth Authenticator, resolver ProfileResolver, opts ...Option) *Store {
	s := &Store{
		subs:     make(map[int]func(State)),
		repo:     repo,
		auth:     auth,
		resolver: resolver,
		message:  func(err error) string { return err.Error() },
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "session")
	return s
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to be called with a snapshot after every change.
// Callbacks run synchronously on the mutating goroutine, outside the lock.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// update applies fn under the write lock and notifies subscribers.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// SetUser commits token and user in memory and clears any error.
// It does not touch durable storage; see Commit.
func (s *Store) SetUser(token string, user models.UserProfile) {
	s.update(func(st *State) {
		st.Token = &token
		st.User = &user
		st.Error = nil
	})
}

// Commit mirrors token under both storage keys in one transaction and then
// sets it in memory together with user. Nothing changes in memory if the
// write fails.
func (s *Store) Commit(ctx context.Context, token string, user models.UserProfile) error {
	err := s.repo.Atomically(ctx, func(ctx context.Context, repo storage.Repository) error {
		for _, key := range common.TokenKeys {
			if err := repo.Set(ctx, key, []byte(token)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.SetUser(token, user)
	s.logger.Debug(ctx, "session committed", "token", s.redact.Token(token), "user", user)
	return nil
}

// Login runs the whole login flow: authenticate, resolve the profile,
// persist the token and commit the user. On failure State.Error is set,
// token and user keep their previous values, and the error is returned.
// A successful Login always leaves a non-nil User.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = nil
	})

	res, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "email", s.redact.Email(email), "status", identity.StatusCode(err), "error", err)
		s.fail(err)
		return err
	}

	out := s.resolver.Resolve(ctx, res.Token, email, res.Embedded)
	if out.Kind == profile.Fallback {
		s.logger.Warn(ctx, "using placeholder profile", "user", out.Profile)
	}

	if err := s.Commit(ctx, res.Token, out.Profile); err != nil {
		s.logger.Error(ctx, "failed to persist session", "error", err)
		s.fail(err)
		return err
	}

	s.update(func(st *State) {
		st.Loading = false
	})
	s.logger.Info(ctx, "logged in", "user", out.Profile, "source", out.Kind.String())
	return nil
}

func (s *Store) fail(err error) {
	msg := s.message(err)
	s.update(func(st *State) {
		st.Loading = false
		st.Error = &msg
	})
}

// Logout removes both storage keys in one transaction and clears token and
// user. The in-memory session is cleared even if storage fails; the error
// is returned so the caller can warn that the token may come back.
// State.Error is left as is.
func (s *Store) Logout(ctx context.Context) error {
	err := s.repo.Atomically(ctx, func(ctx context.Context, repo storage.Repository) error {
		for _, key := range common.TokenKeys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})

	s.update(func(st *State) {
		st.Token = nil
		st.User = nil
	})

	if err != nil {
		s.logger.Error(ctx, "failed to clear persisted token", "error", err)
		return fmt.Errorf("clear token: %w", err)
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

// CheckAuth restores a persisted token, preferring "token" over
// "accessToken". Only the token is restored; the user stays as is and no
// request is made. Loading is not touched.
func (s *Store) CheckAuth(ctx context.Context) error {
	var token string
	for _, key := range common.TokenKeys {
		v, err := s.repo.Get(ctx, key)
		if err != nil {
			s.logger.Error(ctx, "failed to read persisted token", "key", key, "error", err)
			return err
		}
		if len(v) > 0 {
			token = string(v)
			break
		}
	}

	if token == "" {
		s.logger.Debug(ctx, "no persisted session")
		return nil
	}

	s.update(func(st *State) {
		st.Token = &token
	})
	s.logger.Debug(ctx, "session restored", "token", s.redact.Token(token))
	return nil
}

// RefreshUserInfo looks the user up again with the current token and merges
// non-empty fields into the current user. It never synthesizes a
// placeholder; failures are logged and leave the user unchanged. It
// reports whether the user was updated.
func (s *Store) RefreshUserInfo(ctx context.Context, email string) bool {
	st := s.State()
	if st.Token == nil {
		s.logger.Warn(ctx, "refresh skipped", "error", common.ErrNotLoggedIn)
		return false
	}

	remote, err := s.resolver.Lookup(ctx, *st.Token)
	if err != nil {
		s.logger.Warn(ctx, "failed to refresh user info", "error", err, "unauthorized", errors.Is(err, identity.ErrUnauthorized))
		return false
	}

	var updated bool
	s.update(func(cur *State) {
		// The session may have changed while the lookup was in flight.
		if cur.Token == nil || *cur.Token != *st.Token {
			return
		}
		base := models.UserProfile{Email: email}
		if cur.User != nil {
			base = *cur.User
		}
		merged := s.resolver.Complete(base.Merge(remote), email)
		cur.User = &merged
		updated = true
	})
	if updated {
		s.logger.Debug(ctx, "user info refreshed")
	}
	return updated
}

// ClearError resets State.Error.
func (s *Store) ClearError() {
	s.update(func(st *State) {
		st.Error = nil
	})
}
