package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a human-readable console
// writer, everything else structured JSON.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var log zerolog.Logger
	if environment == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log = zerolog.New(out)
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.With().
		Timestamp().
		Str("service", "quotes-service").
		Logger()
}
