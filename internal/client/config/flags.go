package config

import (
	"flag"
	"os"

	"github.com/safariskills/passport/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the credential-verification API
//	-s string   path of the local session store
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the credential-verification API")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local session store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
