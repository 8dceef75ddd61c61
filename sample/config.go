package sample

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultAPIEndpoint = "/mcp"
	defaultTimeout     = 5000
	defaultDebug       = true
)

// Config is the static configuration exported alongside Greet.
type Config struct {
	// APIEndpoint is the URL path the host exposes the sample under.
	APIEndpoint string `json:"apiEndpoint"`
	// Timeout is expressed in milliseconds.
	Timeout int `json:"timeout"`
	Debug   bool `json:"debug"`
}

// DefaultConfig returns the sample configuration.
func DefaultConfig() Config {
	return Config{
		APIEndpoint: defaultAPIEndpoint,
		Timeout:     defaultTimeout,
		Debug:       defaultDebug,
	}
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// MarshalZerologObject allows to log the config as a structured object.
func (c Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("apiEndpoint", c.APIEndpoint).
		Int("timeout", c.Timeout).
		Bool("debug", c.Debug)
}
