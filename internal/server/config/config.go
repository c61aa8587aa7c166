// Package config handles configuration for the NewsDigest server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the NewsDigest server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps everything in memory.
//   - SecretKey: HMAC secret for signing session cookies (HS256). Do not use
//     the default in production.
//   - SessionLifetime: how long a login stays valid.
//   - NewsAPIKey / NewsAPIURL: upstream headline provider.
//   - PublicBaseURL: prefix for share links; empty derives it from the request.
//   - AllowedOrigins: browser origins allowed to call the API with credentials.
//   - AuthRateLimit: login/signup attempts per minute per client address.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	ListenAddr      string
	DatabaseDSN     string
	SecretKey       string
	SessionLifetime time.Duration
	NewsAPIKey      string
	NewsAPIURL      string
	PublicBaseURL   string
	AllowedOrigins  []string
	AuthRateLimit   int
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionLifetime = 7 * 24 * time.Hour
	c.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	c.NewsAPIURL = "https://newsapi.org/v2"
	c.PublicBaseURL = ""
	c.AllowedOrigins = []string{"http://localhost:3000", "https://news-dd.vercel.app"}
	c.AuthRateLimit = 10
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
