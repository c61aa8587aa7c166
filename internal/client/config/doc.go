// Package config loads runtime configuration for the NewsDigest client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). The default backend
//     address depends on the build: `-tags production` selects the hosted
//     backend, any other build talks to http://localhost:5000.
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "data_path": "/home/me/.local/share/newsdigest/newsdigest.db",
//	  "request_timeout": "10s",
//	  "login_policy": "keepLocal",
//	  "initial_route": "/dashboard",
//	  "ping_interval": "30s",
//	  "debug": false
//	}
package config
