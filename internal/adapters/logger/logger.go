// Package logger implements a logging adapter using log/slog with a
// charmbracelet/log handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

// Options configures the logger output.
type Options struct {
	Level  domain.LogLevel
	Format domain.LogFormat
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	opts   Options
	mu     sync.RWMutex
}

// New creates a new Logger writing human readable output to stderr at info level.
func New() ports.Logger {
	return NewWithOptions(os.Stderr, Options{Level: domain.LogLevelInfo, Format: domain.LogFormatText})
}

// NewWithOptions creates a new Logger writing to w.
func NewWithOptions(w io.Writer, opts Options) *Logger {
	return &Logger{
		logger: slog.New(newHandler(w, opts)),
		opts:   opts,
	}
}

func newHandler(w io.Writer, opts Options) slog.Handler {
	formatter := charmlog.TextFormatter
	if opts.Format == domain.LogFormatJSON {
		formatter = charmlog.JSONFormatter
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(opts.Level),
		ReportTimestamp: opts.Format == domain.LogFormatJSON,
		Formatter:       formatter,
	})
}

// SetOutput updates the logger's output destination.
// This is thread-safe and replaces the underlying slog handler.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(w, l.opts))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
