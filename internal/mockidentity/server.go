package mockidentity

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

// ProfilePaths are the profile endpoints served, in the order the client
// tries them.
var ProfilePaths = []string{"/user/info", "/users/me", "/user/profile", "/auth/user", "/me", "/account"}

// dummyHash keeps unknown-user logins as slow as wrong-password ones.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	// Forbidden users get tokens but 403 on every profile endpoint.
	Forbidden bool
}

type Server struct {
	mu       sync.RWMutex
	users    map[string]*User
	failures map[string]int
	embed    bool
	secret   []byte
	validity time.Duration
	cost     int
	logger   logging.Logger
}

type Option func(*Server)

// WithEmbeddedProfile makes the token response include a "user" object.
func WithEmbeddedProfile(embed bool) Option {
	return func(s *Server) { s.embed = embed }
}

// WithBcryptCost sets the hashing cost for AddUser. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

func WithTokenValidity(d time.Duration) Option {
	return func(s *Server) { s.validity = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(secret []byte, opts ...Option) *Server {
	s := &Server{
		users:    make(map[string]*User),
		failures: make(map[string]int),
		secret:   secret,
		validity: time.Hour,
		cost:     bcrypt.DefaultCost,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddUser registers a user and returns its generated ID.
func (s *Server) AddUser(email, name, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	u := &User{ID: uuid.NewString(), Email: strings.ToLower(email), Name: name, PasswordHash: hash}

	s.mu.Lock()
	s.users[u.Email] = u
	s.mu.Unlock()
	return u.ID, nil
}

// SetForbidden marks a user's tokens as not allowed to read profiles.
func (s *Server) SetForbidden(email string, forbidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[strings.ToLower(email)]; ok {
		u.Forbidden = forbidden
	}
}

// FailEndpoint makes path answer with status until cleared with status 0.
func (s *Server) FailEndpoint(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// Router returns the HTTP routes of the mock API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/yeshtery/token", s.handleToken)
	for _, p := range ProfilePaths {
		r.Get(p, s.handleProfile)
	}
	return r
}

type tokenRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsEmployee bool   `json:"isEmployee"`
}

func (t *tokenRequest) Bind(_ *http.Request) error {
	if t.Email == "" || t.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	req := &tokenRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]any{"message": err.Error()})
		return
	}

	s.mu.RLock()
	u, ok := s.users[strings.ToLower(req.Email)]
	s.mu.RUnlock()

	hash := []byte(dummyHash)
	if ok {
		hash = u.PasswordHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil || !ok {
		s.logger.Info(r.Context(), "token request rejected")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"message": "Invalid credentials"})
		return
	}

	token, err := GenerateToken(u.ID, u.Email, s.secret, s.validity)
	if err != nil {
		s.logger.Error(r.Context(), "failed to sign token", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{"message": "internal error"})
		return
	}

	resp := map[string]any{"token": token}
	if s.embed {
		resp["user"] = profileResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.failures[r.URL.Path]
	s.mu.RUnlock()
	if status != 0 {
		render.Status(r, status)
		render.JSON(w, r, map[string]any{"message": http.StatusText(status)})
		return
	}

	tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"message": "missing bearer token"})
		return
	}

	claims, err := ParseToken(tokenString, s.secret)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"message": "invalid token"})
		return
	}

	s.mu.RLock()
	u, ok := s.users[claims.Email]
	s.mu.RUnlock()
	if !ok || u.ID != claims.Subject {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"message": "unknown user"})
		return
	}
	if u.Forbidden {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, map[string]any{"message": "access denied"})
		return
	}

	render.JSON(w, r, profileResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}
