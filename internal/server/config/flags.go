package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/yeshlogin/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string          HTTP bind address (e.g., ":8080")
//	-u string          identity API base URL
//	-r int             forwarded request timeout, seconds
//	-l string          log level
//	-log-credentials   log tokens unmasked
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-r", "-l"}, "-log-credentials")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.IdentityBaseURL, "u", config.IdentityBaseURL, "identity API base URL")
	timeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "forwarded request timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.LogCredentials, "log-credentials", config.LogCredentials, "log tokens unmasked")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*timeout) * time.Second
}
