package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
)

// parseFlags overlays config with command-line flags:
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN, empty for in-memory storage
//	-s string   session signing secret
//	-t int      session lifetime, minutes
//	-k string   NewsAPI key
//	-b string   public base URL for share links
//	-o string   comma-separated allowed CORS origins
//
// Unknown flags are filtered out first with flagx.FilterArgs so the -c
// config flag does not trip the parser. It panics on malformed values.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-k", "-b", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	lifetime := fs.Int("t", int(config.SessionLifetime.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&config.NewsAPIKey, "k", config.NewsAPIKey, "NewsAPI key")
	fs.StringVar(&config.PublicBaseURL, "b", config.PublicBaseURL, "public base URL for share links")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins (comma separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionLifetime = time.Duration(*lifetime) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
