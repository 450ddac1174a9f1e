// Package logger is the CLI's verbose trace. Nothing is written unless
// --verbose is set; then API calls, re-authentication and searches are
// logged to stderr (or to a file while the TUI owns the screen).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	out     io.Writer = os.Stderr
	log               = build(out, false)
)

// build returns a logger that writes "[LEVEL] message key=value" lines.
func build(w io.Writer, on bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			level, ok := i.(string)
			if !ok || level == "" {
				return ""
			}
			return "[" + strings.ToUpper(level) + "]"
		},
	}
	level := zerolog.Disabled
	if on {
		level = zerolog.DebugLevel
	}
	return zerolog.New(console).Level(level)
}

// SetVerbose turns logging on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build(out, v)
}

// IsVerbose reports whether logging is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	log = build(w, verbose)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Debug logs a trace message.
func Debug(format string, args ...any) {
	current().Debug().Msgf(format, args...)
}

// Info logs a progress message.
func Info(format string, args ...any) {
	current().Info().Msgf(format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	current().Warn().Msgf(format, args...)
}

// Section prints an unlevelled "=== name ===" header between phases.
func Section(name string) {
	current().Log().Msg(fmt.Sprintf("=== %s ===", name))
}

// Fields logs msg at debug level with structured key/value pairs.
func Fields(msg string, fields map[string]any) {
	current().Debug().Fields(fields).Msg(msg)
}

// Redact shortens a credential so it can be logged.
func Redact(secret string) string {
	switch {
	case secret == "":
		return "<none>"
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "****"
	}
}
