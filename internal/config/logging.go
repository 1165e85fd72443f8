package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ParseLogLevel maps a config string onto a slog level. Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// NewLogger builds the JSON logger used across the service. When cfg.LogDir
// is set, output is mirrored into a rotated file; the returned closer must be
// closed on shutdown.
func NewLogger(cfg *Config, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	var out io.Writer = stdout
	var closer io.Closer = nopCloser{}

	if cfg.LogDir != "" {
		f, err := SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(stdout, f)
		closer = f
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.LogLevel),
	}))
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

const (
	logFilePrefix     = "projecthub-"
	logFileTimeLayout = "2006-01-02T15-04-05"
)

// SetupLogFile opens a fresh timestamped file in dir and prunes the
// directory down to maxFiles. The caller owns the returned file.
func SetupLogFile(dir string, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := logFilePrefix + time.Now().Format(logFileTimeLayout) + ".log"
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	// A failed prune leaves extra files behind but logging still works.
	if err := cleanupOldLogs(dir, maxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "warning: prune log directory: %v\n", err)
	}

	return f, nil
}

// cleanupOldLogs keeps the maxFiles newest log files. Names embed the
// timestamp, so lexical order is chronological.
func cleanupOldLogs(dir string, maxFiles int) error {
	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	if err != nil {
		return err
	}
	if maxFiles < 1 || len(files) <= maxFiles {
		return nil
	}

	sort.Strings(files)
	var errs []error
	for _, old := range files[:len(files)-maxFiles] {
		if err := os.Remove(old); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
