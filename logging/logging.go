package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config; defaults to INFO if invalid or empty.
// The format is FormatJSON unless FormatText is requested.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler

	switch strings.ToLower(config.Format) {
	case FormatText:
		handler = slog.NewTextHandler(w, handlerOptions)
	default:
		handler = slog.NewJSONHandler(w, handlerOptions)
	}

	return slog.New(handler)
}

// ParseLevel converts a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelError,
		ReplaceAttr: nil,
	}))
}
