// Package logging builds structured loggers from validated settings. Output
// format and level follow LOG_FORMAT and LOG_LEVEL; a redactor scrubs API
// keys and credentials from attribute values before they reach the handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"orgair-hq/atlas/pkg/settings"
)

// LogFormat is the output format for logs.
type LogFormat string

const (
	// FormatJSON outputs logs as JSON objects, one per line.
	FormatJSON LogFormat = "json"
	// FormatConsole outputs logs in human-readable key=value form.
	FormatConsole LogFormat = "console"
)

// Config contains configuration for New.
type Config struct {
	// Level is the minimum log level: DEBUG, INFO, WARNING, or ERROR.
	Level string

	// Format is the output format: json or console.
	Format string

	// AddSource includes file and line number in logs.
	AddSource bool

	// Redact enables scrubbing of secrets from attribute values.
	Redact bool

	// Writer is the output writer (defaults to os.Stderr).
	Writer io.Writer
}

// FromSettings derives a logger configuration from validated settings.
// Redaction is always on outside development.
func FromSettings(s *settings.Settings) Config {
	return Config{
		Level:  s.LogLevel,
		Format: s.LogFormat,
		Redact: s.AppEnv != settings.EnvDevelopment || !s.Debug,
	}
}

// New creates a slog.Logger with the given configuration.
func New(cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}
	if cfg.Redact {
		redactor := NewRedactor()
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			return redactor.RedactAttr(a)
		}
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatConsole:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler), nil
}

// MustFromSettings builds a logger from settings, panicking on config errors.
// Safe because LOG_LEVEL and LOG_FORMAT are enum-validated before this runs.
func MustFromSettings(s *settings.Settings) *slog.Logger {
	logger, err := New(FromSettings(s))
	if err != nil {
		panic(err)
	}
	return logger
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", level)
	}
}

func parseFormat(format string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FormatJSON, nil
	case "console", "text":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
