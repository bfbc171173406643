package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/yeshlogin/internal/client/config"
	"github.com/dmitrijs2005/yeshlogin/internal/client/identity"
	"github.com/dmitrijs2005/yeshlogin/internal/client/login"
	"github.com/dmitrijs2005/yeshlogin/internal/client/profile"
	"github.com/dmitrijs2005/yeshlogin/internal/client/session"
	"github.com/dmitrijs2005/yeshlogin/internal/client/storage"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
	"github.com/dmitrijs2005/yeshlogin/internal/filex"
	"github.com/dmitrijs2005/yeshlogin/internal/logging"
)

type App struct {
	config     *config.Config
	store      *session.Store
	controller *login.Controller
	identity   identity.Client
	closer     io.Closer
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer
	route      string
	email      string

	unsubscribe func()
	// last is the session as of the previous store notification.
	last session.State
	// reported is set once a store error has been printed.
	reported bool
}

// NewApp opens the session storage and wires the identity client, profile
// resolver, session store and login controller from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	path, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		logger.Error(ctx, "error initializing session storage", "path", path, "error", err)
		return nil, err
	}

	redact := logging.Redactor{Reveal: c.LogCredentials}

	opts := []identity.Option{
		identity.WithTimeout(c.RequestTimeout),
		identity.WithLogger(logger),
		identity.WithRedactor(redact),
	}
	if c.ProfileTransport == config.TransportForward {
		opts = append(opts, identity.WithProfileTransport(identity.NewForwardTransport(c.ForwarderURL)))
	}
	ic := identity.NewHTTPClient(c.IdentityBaseURL, opts...)

	return newApp(c, db, ic, db, logger, redact), nil
}

// newApp assembles an App around an already opened repository.
func newApp(c *config.Config, repo storage.Durable, ic identity.Client, closer io.Closer, logger logging.Logger, redact logging.Redactor) *App {
	resolver := profile.NewResolver(ic, profile.WithLogger(logger))
	store := session.NewStore(repo, ic, resolver,
		session.WithMessage(login.DisplayMessage),
		session.WithLogger(logger),
		session.WithRedactor(redact),
	)

	a := &App{
		config:   c,
		store:    store,
		identity: ic,
		closer:   closer,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		route:    common.LoginRoute,
	}
	a.controller = login.NewController(store, a, logger)
	a.unsubscribe = store.Subscribe(a.onSessionChange)
	return a
}

// onSessionChange reports login progress and failures as the store
// publishes them.
func (a *App) onSessionChange(st session.State) {
	prev := a.last
	a.last = st

	if st.Loading && !prev.Loading {
		fmt.Fprintln(a.out, "Signing in...")
	}
	if st.Error != nil && (prev.Error == nil || *prev.Error != *st.Error) {
		a.errorf("%s", *st.Error)
		a.reported = true
	}
}

// Run restores the session and serves commands until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		a.unsubscribe()
		if a.closer != nil {
			_ = a.closer.Close()
		}
	}()

	fmt.Fprintln(a.out, "Yeshtery login (type 'help' for commands)")
	a.bootstrap(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// bootstrap restores a persisted token without contacting the identity API.
// A restored session has no user until the user asks for a refresh.
func (a *App) bootstrap(ctx context.Context) {
	if err := a.store.CheckAuth(ctx); err != nil {
		a.warnf("Could not restore session: %v", err)
	}

	st := a.store.State()
	if !st.Authenticated() {
		a.Navigate(common.LoginRoute)
		return
	}
	a.Navigate(common.DashboardRoute)
}

// Navigate switches the current view and renders it.
func (a *App) Navigate(route string) {
	a.route = route
	switch route {
	case common.DashboardRoute:
		a.renderDashboard()
	default:
		fmt.Fprintln(a.out, "Not logged in. Type 'login' to sign in.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Authenticated()
}

func (a *App) getStatus() string {
	st := a.store.State()
	switch {
	case st.Loading:
		return "(signing in)"
	case st.User != nil:
		return fmt.Sprintf("(%s)", st.User.Name)
	case st.Token != nil:
		return "(logged in)"
	default:
		return ""
	}
}
