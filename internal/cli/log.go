// Package cli implements the knotwork command-line interface.
//
// The CLI converts RNA secondary structures from BPSEQ into multi-level
// dot-bracket notation, inspects the conflict graph behind a conversion,
// serves the conversion over HTTP and manages the local result cache. It is
// built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Convert BPSEQ (or dot-bracket) input to dot-bracket notation
//   - regions: Debug tool listing regions, conflicts and cliques
//   - explore: Browse ranked alternative structures interactively
//   - serve: Run the HTTP API
//   - cache: Manage the conversion cache
//
// # Configuration
//
// Resolver, cache and server settings are read from
// ~/.config/knotwork/config.toml. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline, cache and HTTP events. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
