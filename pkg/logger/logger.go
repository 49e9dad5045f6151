// Package logger configures the zerolog loggers used by the validator.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures a logger.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn".
	// Empty means "info".
	Level string

	// Format is FormatJSON or FormatConsole. Empty means FormatConsole.
	Format string
}

var (
	mu            sync.RWMutex
	defaultLogger = Nop()
)

// Default returns the default logger. It discards everything until
// SetDefault is called; packages take it when no logger is passed.
func Default() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// ParseLevel parses a level name. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New creates a logger writing to w. Invalid levels fall back to info;
// use ParseLevel first to report them.
func New(w io.Writer, opts Options) zerolog.Logger {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if opts.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "geofeed-validator").Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
