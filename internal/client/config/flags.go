package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/yeshlogin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string          identity API base URL
//	-f string          forwarding server URL
//	-t string          profile transport: direct or forward
//	-s string          session storage file
//	-r int             request timeout in seconds
//	-l string          log level
//	-log-credentials   log tokens and emails unmasked
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-s", "-r", "-l"}, "-log-credentials")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.IdentityBaseURL, "a", cfg.IdentityBaseURL, "identity API base URL")
	fs.StringVar(&cfg.ForwarderURL, "f", cfg.ForwarderURL, "forwarding server URL")
	fs.StringVar(&cfg.ProfileTransport, "t", cfg.ProfileTransport, "profile transport (direct|forward)")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "session storage file")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.LogCredentials, "log-credentials", cfg.LogCredentials, "log tokens and emails unmasked")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
