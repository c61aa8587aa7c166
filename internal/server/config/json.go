package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
	"github.com/dmitrijs2005/newsdigest/internal/timex"
)

// JsonConfig is the on-disk shape, read only to overlay Config. Durations
// accept both "90s" strings and integer nanoseconds.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	DatabaseDSN     *string        `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	SessionLifetime timex.Duration `json:"session_lifetime"`
	NewsAPIKey      string         `json:"news_api_key"`
	NewsAPIURL      string         `json:"news_api_url"`
	PublicBaseURL   string         `json:"public_base_url"`
	AllowedOrigins  []string       `json:"allowed_origins"`
	AuthRateLimit   int            `json:"auth_rate_limit"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the file named by -c/-config. Fields left
// out of the file keep their current value. It panics if the file cannot be
// read or parsed.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)

	// nothing to load
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionLifetime.Duration > 0 {
		config.SessionLifetime = c.SessionLifetime.Duration
	}
	if c.NewsAPIKey != "" {
		config.NewsAPIKey = c.NewsAPIKey
	}
	if c.NewsAPIURL != "" {
		config.NewsAPIURL = c.NewsAPIURL
	}
	if c.PublicBaseURL != "" {
		config.PublicBaseURL = c.PublicBaseURL
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.AuthRateLimit > 0 {
		config.AuthRateLimit = c.AuthRateLimit
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
