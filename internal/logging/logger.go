package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"simradio/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives human output. Nil means stderr.
	Console io.Writer
	// Color forces ANSI level colors. When false, color is enabled only if
	// Console is a terminal.
	Color bool
	// File enables a rotated JSON log at the given path.
	File        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
	Development bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New constructs a slog logger using the provided options. The returned
// closer releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := parseLevel(opts.Level)
	addSource := opts.Development || level <= slog.LevelDebug

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var consoleHandler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		consoleHandler = newPrettyHandler(console, level, addSource, opts.Color || IsTerminal(console))
	case "json":
		consoleHandler = newJSONHandler(console, level, addSource)
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	if strings.TrimSpace(opts.File) == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	// The file always records debug detail so failed runs can be diagnosed.
	handler := TeeHandler(consoleHandler, newJSONHandler(file, slog.LevelDebug, true))
	return slog.New(handler), file, nil
}

// NewFromConfig creates a logger using application config values.
func NewFromConfig(cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Console: console})
	}
	return New(Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Console:    console,
		File:       cfg.LogFile(),
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
