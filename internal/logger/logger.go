package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = newLogger(os.Stderr, levelFromEnv())
)

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

func levelFromEnv() zerolog.Level {
	if os.Getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Configure replaces the package logger. A nil writer keeps stderr.
func Configure(out io.Writer, level zerolog.Level) {
	if out == nil {
		out = os.Stderr
	}
	mu.Lock()
	base = newLogger(out, level)
	mu.Unlock()
}

// SetLevel changes the level of the package logger in place.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	base = base.Level(level)
	mu.Unlock()
}

// Get returns the package logger.
func Get() *zerolog.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	return &l
}

// With returns a logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

func DebugLog(format string, args ...any) {
	Get().Debug().Msgf(format, args...)
}
