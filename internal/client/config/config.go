package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// LoginPolicy decides what happens to preferences when a user logs in.
type LoginPolicy string

const (
	// PolicyKeepLocal never reads remote preferences; the device keeps what
	// it has.
	PolicyKeepLocal LoginPolicy = "keepLocal"
	// PolicyPullRemote replaces local preferences with the server copy when
	// one exists.
	PolicyPullRemote LoginPolicy = "pullRemote"
	// PolicyMerge adopts the server copy on a device that never saved
	// preferences, and otherwise appends remote-only categories.
	PolicyMerge LoginPolicy = "merge"
)

// ParseLoginPolicy accepts the policy names case-insensitively.
func ParseLoginPolicy(s string) (LoginPolicy, error) {
	for _, p := range []LoginPolicy{PolicyKeepLocal, PolicyPullRemote, PolicyMerge} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown login policy %q (valid: keepLocal, pullRemote, merge)", s)
}

// Config holds runtime settings for the NewsDigest client.
//
// Fields:
//   - ServerURL: base URL of the backend; every request is relative to it.
//   - DataPath: SQLite file holding preferences, counters and the cookie jar.
//   - RequestTimeout: upper bound for a single backend call.
//   - LoginPolicy: preference reconciliation on login.
//   - InitialRoute: path opened at startup ("/", "/dashboard", "/shared/<id>").
//   - PingInterval: how often connectivity is probed; zero disables it.
//   - Debug: enables debug-level diagnostics on stderr.
type Config struct {
	ServerURL      string
	DataPath       string
	RequestTimeout time.Duration
	LoginPolicy    LoginPolicy
	InitialRoute   string
	PingInterval   time.Duration
	Debug          bool
}

// DefaultDataPath is $XDG_DATA_HOME/newsdigest/newsdigest.db.
func DefaultDataPath() string {
	return filepath.Join(xdg.DataHome, "newsdigest", "newsdigest.db")
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.DataPath = DefaultDataPath()
	c.RequestTimeout = 10 * time.Second
	c.LoginPolicy = PolicyKeepLocal
	c.InitialRoute = "/"
	c.PingInterval = 30 * time.Second
	c.Debug = false
}

// LoadConfig applies defaults, then the optional JSON file, then flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
