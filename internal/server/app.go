// Package server runs the forwarding HTTP server: it wires configuration,
// logging and the forward handler, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/dmitrijs2005/yeshlogin/internal/logging"
	"github.com/dmitrijs2005/yeshlogin/internal/server/config"
	"github.com/dmitrijs2005/yeshlogin/internal/server/forward"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	return NewAppWithLogger(c, logger), nil
}

// NewAppWithLogger builds the App around an existing logger.
func NewAppWithLogger(c *config.Config, logger logging.Logger) *App {
	app := &App{config: c, logger: logger}
	app.server = &http.Server{
		Addr:              c.ListenAddr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app
}

// Router builds the HTTP routes.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(app.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "OK")
	})

	client := &http.Client{Timeout: app.config.RequestTimeout}
	redact := logging.Redactor{Reveal: app.config.LogCredentials}
	forward.NewHandler(app.config.IdentityBaseURL, client, app.logger, redact).Routes(r)

	return r
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := app.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	app.logger.Info(ctx, "forwarding server listening", "addr", l.Addr().String(), "upstream", app.config.IdentityBaseURL)

	select {
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
	case err, ok := <-errCh:
		if ok {
			app.logger.Error(ctx, "server error", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	return app.server.Shutdown(shutdownCtx)
}

// Run listens on the configured address and serves until SIGINT, SIGTERM
// or SIGQUIT, or until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	l, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		app.logger.Error(ctx, "listen failed", "addr", app.config.ListenAddr, "error", err)
		return err
	}
	return app.Serve(ctx, l)
}
