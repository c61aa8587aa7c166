//go:build !production

package config

// DefaultServerURL is the local development backend.
const DefaultServerURL = "http://localhost:5000"
