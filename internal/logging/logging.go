// Package logging builds the zerolog loggers used by the CLI and the HTTP server.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"tasker/internal/config"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
}

// New returns a logger writing to w.
// The local env gets a human-readable console writer at trace level,
// dev logs JSON at debug level and everything else logs JSON at info level.
func New(w io.Writer, env string) zerolog.Logger {
	level := zerolog.InfoLevel
	switch env {
	case config.EnvLocal:
		level = zerolog.TraceLevel
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = w
		w = consoleWriter
	case config.EnvDev:
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

// ForCLI returns a logger for one CLI invocation: warnings and errors only,
// or everything from debug up when debug is set.
func ForCLI(w io.Writer, env string, debug bool) zerolog.Logger {
	logger := New(w, env)
	if debug {
		return logger.Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.WarnLevel)
}
