// Package logging provides the structured logger shared by the path, file
// and settings services.
//
// The services never surface errors to their callers, so this logger is the
// only place where the difference between bad input, a missing path and a
// filesystem fault remains visible.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmgilman/go/stridepack/errors"
)

// LogLevel represents different logging levels
type LogLevel int

// LogLevelDebug represents debug logging level
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
	// Output receives the log records. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            LogLevelInfo,
		EnableCallerInfo: false,
		Output:           os.Stderr,
	}
}

// Logger provides structured logging for the services.
// A nil *Logger is valid and discards everything.
type Logger struct {
	logger *slog.Logger
	level  LogLevel
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	})

	return &Logger{
		logger: slog.New(handler),
		level:  config.Level,
	}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) enabled() bool {
	return l != nil && l.logger != nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled() {
		l.logger.Debug(msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(msg string, args ...any) {
	if l.enabled() {
		l.logger.Info(msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(msg string, args ...any) {
	if l.enabled() {
		l.logger.Warn(msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(msg string, args ...any) {
	if l.enabled() {
		l.logger.Error(msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if !l.enabled() {
		return l
	}
	return &Logger{logger: l.logger.With(args...), level: l.level}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation string) *Logger {
	return l.With("operation", operation)
}

// WithPath returns a logger with path context
func (l *Logger) WithPath(path string) *Logger {
	return l.With("path", path)
}

// Failure records why an operation returned its failure value. The
// operation name is attached with WithOperation.
//
// Input problems (invalid input, invalid path, outside boundary, not found)
// are logged at debug level since they are an expected outcome of user input.
// Everything else is an environment fault and is logged as a warning, or as
// an error when the code is CodeInternal.
func (l *Logger) Failure(err error) {
	if !l.enabled() || err == nil {
		return
	}

	code := errors.GetCode(err)
	fields := []any{
		"code", string(code),
		"classification", string(errors.GetClassification(err)),
		"error", err.Error(),
	}

	var perr errors.PlatformError
	if errors.As(err, &perr) {
		for k, v := range perr.Context() {
			fields = append(fields, k, v)
		}
	}

	switch code {
	case errors.CodeInvalidInput, errors.CodeInvalidPath, errors.CodeOutsideBoundary, errors.CodeNotFound:
		l.logger.Debug("operation rejected", fields...)
	case errors.CodeInternal:
		l.logger.Error("operation failed", fields...)
	default:
		l.logger.Warn("operation failed", fields...)
	}
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
