// Package logging wraps log/slog with the options mtodo reads from its config.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mtodo/internal/infrastructure/config"
	"mtodo/pkg/filesystem"
)

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// options holds all configurable settings for the logger.
type options struct {
	level  slog.Level
	output io.Writer
	format string // "json" or "text"
}

// Option overrides a setting taken from the config
type Option func(*options)

// WithLevel overrides the level
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

// WithOutput overrides the destination
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// New creates a logger from the logging section of the config.
// With output "file" the log file is opened for appending and closed by Close.
func New(cfg config.LoggingConfig, opts ...Option) (*Logger, error) {
	o := &options{
		level:  parseLevel(cfg.Level),
		format: strings.ToLower(cfg.Format),
	}

	var closer io.Closer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		o.output = os.Stdout
	case "file":
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		o.output = f
		closer = f
	default:
		o.output = os.Stderr
	}

	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{
		Level: o.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	switch o.format {
	case "json":
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	default:
		handler = slog.NewTextHandler(o.output, handlerOpts)
	}

	return &Logger{
		Logger: slog.New(handler),
		closer: closer,
	}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// DebugContextf logs a debug message with formatting
func (l *Logger) DebugContextf(ctx context.Context, format string, args ...any) {
	l.DebugContext(ctx, fmt.Sprintf(format, args...))
}

// ErrorContextf logs an error message with formatting
func (l *Logger) ErrorContextf(ctx context.Context, format string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = config.DefaultLogFile()
	}
	if err := filesystem.EnsureDir(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// parseLevel converts a level name, defaulting to info
func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
