// Package logger configures the structured logger shared by homegrid
// components. Library packages accept a *slog.Logger; commands build one
// here from the --verbose flag and the HOMEGRID_LOG environment variable.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel is the environment variable that selects the log level.
const EnvLevel = "HOMEGRID_LOG"

// New returns a text logger writing to w. Debug output is enabled when
// verbose is set or HOMEGRID_LOG=debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(os.Getenv(EnvLevel), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init builds a stderr logger and installs it as the slog default.
func Init(verbose bool) *slog.Logger {
	l := New(os.Stderr, verbose)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
