package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// NewLogger builds the JSON slog logger shared by every binary and sets it as default.
// When logFile is not empty the output is also written to a rotating file.
func NewLogger(logLevel string, logFile string) *slog.Logger {
	var output io.Writer = os.Stdout
	if logFile != "" {
		output = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		})
	}

	h := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: ParseLevel(logLevel)})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
