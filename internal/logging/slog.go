package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SlogConfig configures the slog adapter
type SlogConfig struct {
	// Writer receives log records. Defaults to os.Stderr.
	Writer io.Writer

	// Debug lowers the minimum level from info to debug
	Debug bool

	// JSON selects the JSON handler instead of the text handler
	JSON bool
}

// SlogAdapter wraps a slog.Logger to implement the Logger interface
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlog creates a Logger backed by log/slog
func NewSlog(config SlogConfig) *SlogAdapter {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if config.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if config.JSON {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &SlogAdapter{logger: slog.New(handler)}
}

// Debug logs a debug message
func (l *SlogAdapter) Debug(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelDebug, msg, keysAndValues...)
}

// Info logs an informational message
func (l *SlogAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message
func (l *SlogAdapter) Warn(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelWarn, msg, keysAndValues...)
}

// Error logs an error message
func (l *SlogAdapter) Error(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelError, msg, keysAndValues...)
}

func (l *SlogAdapter) log(level slog.Level, msg string, keysAndValues ...interface{}) {
	l.logger.Log(context.Background(), level, msg, keysAndValues...)
}
