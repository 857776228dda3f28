// Package logger adapts charmbracelet/log for use across the input engine.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a logger that respects the process-global log level.
// Every long-lived component (graph, template store, decoder, servers)
// holds one of these tagged with its own prefix rather than calling the
// package-level log functions directly.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with explicit level, caller reporting and
// timestamp options.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       formatter,
	})
}

// Session returns a logger sub-scoped to a single gesture capture session,
// so every log line during that swipe can be correlated by id.
func Session(prefix, sessionID string) *log.Logger {
	l := Default(prefix)
	return l.With("session", sessionID)
}
