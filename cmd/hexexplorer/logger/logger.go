// Package logger is the process-wide log of hexexplorer.
//
// Logging is off unless main calls Init with Enabled set (--debug). Records
// are JSON lines in one file per day under ~/.hexexplorer/logs; files older
// than retentionDays are removed on start.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It discards everything until Init
// enables it.
var L = discard()

var out *os.File

const (
	logPrefix     = "hexexplorer-"
	logSuffix     = ".log"
	dayLayout     = "2006-01-02"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Default: ~/.hexexplorer/logs
	Level   slog.Level // Minimum level; the zero value is Info
	File    string     // Edited file, attached to every record when set
	Now     func() time.Time
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) error {
	_ = Close()
	if !opts.Enabled {
		L = discard()
		return nil
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".hexexplorer", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	today := now()
	pruneLogs(dir, today.AddDate(0, 0, -retentionDays))

	f, err := os.OpenFile(filepath.Join(dir, logPrefix+today.Format(dayLayout)+logSuffix),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	out = f

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	if opts.File != "" {
		L = L.With("file", opts.File)
	}
	return nil
}

// Path returns the file being logged to, or "" when logging is off.
func Path() string {
	if out == nil {
		return ""
	}
	return out.Name()
}

// Close flushes and closes the log file. Logging is discarded afterwards.
func Close() error {
	if out == nil {
		return nil
	}
	err := out.Close()
	out = nil
	L = discard()
	return err
}

// pruneLogs removes daily files dated before cutoff. Errors are ignored.
func pruneLogs(dir string, cutoff time.Time) {
	matches, err := filepath.Glob(filepath.Join(dir, logPrefix+"*"+logSuffix))
	if err != nil {
		return
	}
	for _, p := range matches {
		day := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(p), logPrefix), logSuffix)
		t, err := time.Parse(dayLayout, day)
		if err != nil {
			continue
		}
		if t.Before(cutoff) {
			_ = os.Remove(p)
		}
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any) { L.Info(msg, args...) }
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
