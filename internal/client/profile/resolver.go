package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

const (
	embeddedSource = "embedded"

	fallbackName  = "User"
	fallbackEmail = "unknown@email.com"
)

// Fetcher is the part of the identity client the resolver needs.
type Fetcher interface {
	FetchProfile(ctx context.Context, token, endpoint string) (models.UserProfile, error)
}

// Kind tells how a profile was obtained.
type Kind int

const (
	// Resolved means a remote or embedded profile was used.
	Resolved Kind = iota
	// Fallback means every source failed and the profile is a placeholder.
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of a resolution. Source names the winning source
// ("embedded" or an endpoint path) and is empty for Fallback. Attempts lists
// the sources that failed before it.
type Outcome struct {
	Kind     Kind
	Profile  models.UserProfile
	Source   string
	Attempts []Attempt
}

// Resolver implements the profile resolution policy.
type Resolver struct {
	fetcher   Fetcher
	endpoints []Endpoint
	now       func() time.Time
	logger    logging.Logger
}

type Option func(*Resolver)

// WithEndpoints replaces DefaultEndpoints.
func WithEndpoints(eps []Endpoint) Option {
	return func(r *Resolver) {
		r.endpoints = eps
	}
}

// WithClock sets the time source used for synthesized IDs.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

func WithLogger(l logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

func NewResolver(f Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:   f,
		endpoints: DefaultEndpoints,
		now:       time.Now,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("module", "profile")
	return r
}

// Resolve produces a profile for token. It never fails: when no source
// yields a profile the outcome is a Fallback placeholder built from email.
func (r *Resolver) Resolve(ctx context.Context, token, email string, embedded *models.UserProfile) Outcome {
	sources := make([]Source[models.UserProfile], 0, len(r.endpoints)+1)
	if embedded != nil && embedded.Identifies() {
		e := *embedded
		sources = append(sources, Source[models.UserProfile]{
			Name:  embeddedSource,
			Fetch: func(context.Context) (models.UserProfile, error) { return e, nil },
		})
	}
	sources = append(sources, r.remoteSources(token)...)

	p, src, attempts, err := FirstSuccess(ctx, sources)
	r.logAttempts(ctx, attempts)
	if err == nil {
		r.logger.Debug(ctx, "profile resolved", "source", src)
		return Outcome{Kind: Resolved, Profile: r.Complete(p, email), Source: src, Attempts: attempts}
	}

	r.logger.Warn(ctx, "all profile lookups failed, using placeholder", "attempts", len(attempts))
	return Outcome{Kind: Fallback, Profile: r.placeholder(email), Attempts: attempts}
}

// Lookup runs the remote endpoints only and reports the error when all of
// them fail. Used for refreshing an existing session, where a placeholder
// must not replace real data.
func (r *Resolver) Lookup(ctx context.Context, token string) (models.UserProfile, error) {
	p, src, attempts, err := FirstSuccess(ctx, r.remoteSources(token))
	r.logAttempts(ctx, attempts)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}
	r.logger.Debug(ctx, "profile refreshed", "source", src)
	return p, nil
}

func (r *Resolver) remoteSources(token string) []Source[models.UserProfile] {
	sources := make([]Source[models.UserProfile], 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		path := ep.Path
		if ep.Primary {
			path = ""
		}
		sources = append(sources, Source[models.UserProfile]{
			Name: ep.Path,
			Fetch: func(ctx context.Context) (models.UserProfile, error) {
				return r.fetcher.FetchProfile(ctx, token, path)
			},
		})
	}
	return sources
}

func (r *Resolver) logAttempts(ctx context.Context, attempts []Attempt) {
	for _, a := range attempts {
		r.logger.Debug(ctx, "profile source failed", "source", a.Source, "error", a.Err)
	}
}

// Complete fills the fields a remote profile may omit so that ID and Name
// are always set: a missing email comes from email, a missing ID is
// synthesized as "user-<millis>" and a missing name is the email local
// part. The result is not a placeholder.
func (r *Resolver) Complete(p models.UserProfile, email string) models.UserProfile {
	if p.Email == "" {
		p.Email = email
	}
	if p.ID == "" {
		p.ID = r.syntheticID()
	}
	if p.Name == "" {
		p.Name = displayName(p.Email)
	}
	return p
}

func (r *Resolver) placeholder(email string) models.UserProfile {
	p := models.UserProfile{
		ID:         r.syntheticID(),
		Name:       displayName(email),
		Email:      email,
		IsFallback: true,
	}
	if p.Email == "" {
		p.Email = fallbackEmail
	}
	return p
}

func (r *Resolver) syntheticID() string {
	return fmt.Sprintf("user-%d", r.now().UnixMilli())
}

func displayName(email string) string {
	if local := common.EmailLocalPart(email); local != "" {
		return local
	}
	return fallbackName
}
