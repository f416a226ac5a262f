// Package logging builds the process logger. The logger is constructed once
// in main and handed to the components that log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logPrefix     = "dualdiff-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Dir     string     // Directory for log files. Default: <user cache dir>/dualdiff/logs
	Level   slog.Level // Minimum log level
	Now     func() time.Time
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// New returns a JSON logger writing to a dated file under opts.Dir, and a
// function that closes the file. Log files older than 30 days are removed.
func New(opts Options) (*slog.Logger, func() error, error) {
	if !opts.Enabled {
		return Discard(), func() error { return nil }, nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	logDir := opts.Dir
	if logDir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, nil, err
		}
		logDir = filepath.Join(cache, "dualdiff", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}

	// Clean up old logs (best-effort, ignore errors)
	cleanOldLogs(logDir, now())

	filename := filepath.Join(logDir, logPrefix+now().Format("2006-01-02")+logSuffix)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return logger, f.Close, nil
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// Parse date from filename: dualdiff-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}
