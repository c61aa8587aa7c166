//go:build production

package config

// DefaultServerURL is the hosted backend; selected with -tags production.
const DefaultServerURL = "https://newssummarizerdashboard.onrender.com"
