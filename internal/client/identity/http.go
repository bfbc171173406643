package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

// TokenPath is the credential-exchange endpoint, relative to the API base.
const TokenPath = "/yeshtery/token"

// HTTPClient is the Client implementation over HTTP/JSON.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	transport ProfileTransport
	logger    logging.Logger
	redact    logging.Redactor
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client (15s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.http = c
	}
}

// WithTimeout sets the request timeout. A client passed with WithHTTPClient
// is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.timeout = d
	}
}

// WithProfileTransport selects how FetchProfile reaches the API.
// The default is DirectTransport against the API base URL.
func WithProfileTransport(t ProfileTransport) Option {
	return func(h *HTTPClient) {
		h.transport = t
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) {
		h.logger = l
	}
}

// WithRedactor controls how tokens and emails appear in debug logs.
func WithRedactor(r logging.Redactor) Option {
	return func(h *HTTPClient) {
		h.redact = r
	}
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "https://api-yeshtery.dev.meetusvr.com/v1").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	if c.transport == nil {
		c.transport = NewDirectTransport(c.baseURL)
	}
	c.logger = c.logger.With("module", "identity")
	return c
}

type tokenRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsEmployee bool   `json:"isEmployee"`
}

// Authenticate exchanges credentials for a bearer token.
func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	c.logger.Debug(ctx, "attempting login", "email", c.redact.Email(email))

	payload, err := json.Marshal(tokenRequest{Email: email, Password: password, IsEmployee: true})
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+TokenPath, bytes.NewReader(payload))
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: read login response: %v", ErrTransport, err)
	}

	c.logger.Debug(ctx, "login response", "status", resp.StatusCode)

	if !isSuccess(resp.StatusCode) {
		return AuthResult{}, &StatusError{Err: ErrRejected, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	token, _ := data["token"].(string)
	if token == "" {
		return AuthResult{}, ErrMalformedResponse
	}

	c.logger.Debug(ctx, "login succeeded", "token", c.redact.Token(token))

	return AuthResult{Token: token, Embedded: embeddedProfile(data)}, nil
}

// FetchProfile looks up the user owning token. endpoint selects one of the
// API's profile paths; "" means the primary /user/info.
func (c *HTTPClient) FetchProfile(ctx context.Context, token, endpoint string) (models.UserProfile, error) {
	if endpoint == "" {
		endpoint = common.DefaultProfileEndpoint
	}

	status, body, err := c.transport.Lookup(ctx, c.http, token, endpoint)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.logger.Debug(ctx, "profile response", "endpoint", endpoint, "status", status)

	if !isSuccess(status) {
		return models.UserProfile{}, profileStatusError(status, strings.TrimSpace(string(body)))
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	p := parseProfile(data)
	if !p.Identifies() {
		return models.UserProfile{}, fmt.Errorf("%w: no user id or email in %s response", ErrMalformed, endpoint)
	}
	return p, nil
}

// ValidateToken probes the primary profile endpoint directly, bypassing any
// forwarding transport. It never returns an error; see Validation.Err.
func (c *HTTPClient) ValidateToken(ctx context.Context, token string) Validation {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+common.DefaultProfileEndpoint, nil)
	if err != nil {
		return Validation{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Validation{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Validation{
		Valid:      isSuccess(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
