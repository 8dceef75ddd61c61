// Package logging builds the zerolog logger used by hosts of the sample.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel parses a log level, case-insensitively. An empty level means info.
func ParseLevel(raw string) (zerolog.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %s: %w", raw, err)
	}
	return level, nil
}

// New returns a timestamped logger writing to w at the given level, as JSON
// lines when json is set and through a console writer otherwise.
func New(w io.Writer, level zerolog.Level, json bool) *zerolog.Logger {
	if !json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger
}
