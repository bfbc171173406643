package login

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInProgress is returned by Submit while another attempt is running.
var ErrInProgress = errors.New("login already in progress")

// Status is the form's position in the login flow.
type Status int

const (
	Idle Status = iota
	Submitting
	Authenticated
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Session is the part of *session.Store the controller drives.
type Session interface {
	Login(ctx context.Context, email, password string) error
	ClearError()
}

// Navigator switches the visible view.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

type Controller struct {
	mu      sync.Mutex
	status  Status
	message string

	session Session
	nav     Navigator
	logger  logging.Logger
}

func NewController(s Session, nav Navigator, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		session: s,
		nav:     nav,
		logger:  logger.With("module", "login"),
	}
}

// Validate checks the form before any request is made.
func Validate(creds models.Credentials) error {
	if !emailPattern.MatchString(strings.TrimSpace(creds.Email)) {
		return fmt.Errorf("%w: email", common.ErrInvalidInput)
	}
	if creds.Password == "" {
		return fmt.Errorf("%w: password", common.ErrInvalidInput)
	}
	return nil
}

// Submit runs one login attempt. Invalid input fails without touching the
// session. A submit while another is in flight is rejected. On success the
// controller navigates to the dashboard.
func (c *Controller) Submit(ctx context.Context, creds models.Credentials) error {
	if err := Validate(creds); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.status == Submitting {
			return ErrInProgress
		}
		c.status = Failed
		c.message = DisplayMessage(err)
		return err
	}

	c.mu.Lock()
	if c.status == Submitting {
		c.mu.Unlock()
		return ErrInProgress
	}
	c.status = Submitting
	c.message = ""
	c.mu.Unlock()

	c.session.ClearError()

	email := strings.TrimSpace(creds.Email)
	if err := c.session.Login(ctx, email, creds.Password); err != nil {
		c.logger.Debug(ctx, "login attempt failed", "error", err)
		c.finish(Failed, DisplayMessage(err))
		return err
	}

	c.finish(Authenticated, "")
	c.nav.Navigate(common.DashboardRoute)
	return nil
}

// Status returns the current state and the message to display, if any.
func (c *Controller) Status() (Status, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.message
}

func (c *Controller) finish(s Status, msg string) {
	c.mu.Lock()
	c.status = s
	c.message = msg
	c.mu.Unlock()
}
