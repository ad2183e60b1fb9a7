// Package logging builds the structured slog logger shared by the wrangler
// commands and the API server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, text, pretty
	Service string
	Version string
	File    FileConfig
}

// FileConfig configures the optional rolling JSON log file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a logger writing to stderr, leaving stdout to command output.
func New(cfg *Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w and, when enabled, to a rolling
// log file. Attribute values pass through secret redaction.
func NewWithWriter(cfg *Config, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: NewReplaceAttr(),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "pretty":
		handler = newRedactHandler(log.NewWithOptions(w, log.Options{
			Level:           slogToCharmLevel(level),
			ReportTimestamp: true,
		}), opts.ReplaceAttr)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	if cfg.File.Enabled && cfg.File.Path != "" {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}, opts))
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(slog.String("service_name", cfg.Service))
	}
	if cfg.Version != "" {
		logger = logger.With(slog.String("service_version", cfg.Version))
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogToCharmLevel maps an slog level onto the nearest charm level.
func slogToCharmLevel(level slog.Level) log.Level {
	switch {
	case level < slog.LevelInfo:
		return log.DebugLevel
	case level < slog.LevelWarn:
		return log.InfoLevel
	case level < slog.LevelError:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
