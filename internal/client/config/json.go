package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/newsdigest/internal/flagx"
	"github.com/dmitrijs2005/newsdigest/internal/timex"
)

// JsonConfig is the on-disk shape. Empty fields leave the current value
// untouched, so a file may set only what it cares about.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	DataPath       string          `json:"data_path"`
	RequestTimeout timex.Duration  `json:"request_timeout"`
	LoginPolicy    string          `json:"login_policy"`
	InitialRoute   string          `json:"initial_route"`
	PingInterval   *timex.Duration `json:"ping_interval"`
	Debug          *bool           `json:"debug"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on an
// unreadable or malformed file; a config typo should stop the program
// before it touches any state.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DataPath != "" {
		cfg.DataPath = jc.DataPath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LoginPolicy != "" {
		p, err := ParseLoginPolicy(jc.LoginPolicy)
		if err != nil {
			panic(err)
		}
		cfg.LoginPolicy = p
	}
	if jc.InitialRoute != "" {
		cfg.InitialRoute = jc.InitialRoute
	}
	if jc.PingInterval != nil {
		cfg.PingInterval = jc.PingInterval.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
