// Command mockidentity serves a local stand-in for the identity API so the
// client and forwarding server can be run without network access.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/yeshlogin/internal/logging"
	"github.com/dmitrijs2005/yeshlogin/internal/mockidentity"
)

func main() {
	addr := flag.String("a", ":9090", "address and port to run server")
	secret := flag.String("s", "dev-secret", "token signing secret")
	email := flag.String("email", "demo@example.com", "seeded user email")
	password := flag.String("password", "password", "seeded user password")
	name := flag.String("name", "Demo User", "seeded user name")
	embed := flag.Bool("embed", false, "include the user in token responses")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stdout, "text", "info")

	srv := mockidentity.New([]byte(*secret), mockidentity.WithEmbeddedProfile(*embed), mockidentity.WithLogger(logger))
	if _, err := srv.AddUser(*email, *name, *password); err != nil {
		logger.Error(ctx, "failed to seed user", "error", err)
		os.Exit(1)
	}

	hs := &http.Server{Addr: *addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "mock identity API listening", "addr", *addr, "user", *email)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server error", "error", err)
		os.Exit(1)
	}
}
