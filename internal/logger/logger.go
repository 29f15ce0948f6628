// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "voice-agent"

// Init sets the global level and output. Unknown levels fall back to info; pretty
// switches to a human-readable console writer for local runs.
func Init(level string, pretty bool) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("service", serviceName).Logger()
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	return log.Logger
}

// ForCall returns a logger tagged with the phone call and the tool being run.
// Empty values are left out.
func ForCall(callID, tool string) zerolog.Logger {
	ctx := log.Logger.With()
	if callID != "" {
		ctx = ctx.Str("call_id", callID)
	}
	if tool != "" {
		ctx = ctx.Str("tool", tool)
	}
	return ctx.Logger()
}
