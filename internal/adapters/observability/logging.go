package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the service logger: human-friendly console output in dev,
// JSON everywhere else.
func NewLogger(env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("service", "mv-travel").Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "mv-travel").Logger()
}
