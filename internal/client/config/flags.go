package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/redesocial/internal/flagx"
)

// Flags lists the value-taking flags owned by this package.
var Flags = []string{"-a", "-r", "-t", "-c", "-config"}

// parseFlags populates Config fields from -a, -r and -t.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "server base URL")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -r overrides, so sub-second JSON values survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "r" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
