package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend base URL
//	-d string   local database file
//	-t int      request timeout (seconds)
//	-p string   login policy: keepLocal | pullRemote | merge
//	-r string   initial route, e.g. /shared/abc123
//	-i int      connectivity probe interval (seconds), 0 disables
//	-v          debug logging
//
// It panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-p", "-r", "-i", "-v"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DataPath, "d", cfg.DataPath, "local database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	policy := fs.String("p", string(cfg.LoginPolicy), "login policy: keepLocal, pullRemote or merge")
	fs.StringVar(&cfg.InitialRoute, "r", cfg.InitialRoute, "initial route")
	ping := fs.Int("i", int(cfg.PingInterval.Seconds()), "connectivity probe interval (in seconds)")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	p, err := ParseLoginPolicy(*policy)
	if err != nil {
		panic(err)
	}
	cfg.LoginPolicy = p
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.PingInterval = time.Duration(*ping) * time.Second
}
