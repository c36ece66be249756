// =============================================================================
// H2K to HPXML Translator - Batch Logging
// =============================================================================
//
// Logging for the batch driver. The translation core itself never logs
// (warnings land in the translation state); the driver reports progress and
// failures through this interface so the CLI can route it to a file.
//
// =============================================================================

package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger is a simple logger that prints to stdout.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+msg+"\n", args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// Log levels ordered from most to least verbose.
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) int {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// levelLogger writes timestamped lines at or above a minimum level.
type levelLogger struct {
	out      io.Writer
	min      int
	clock    func() time.Time
	levelTag [4]string
}

// NewLogger returns a leveled logger writing to out. Level is one of
// debug, info, warn, error; anything else means info.
func NewLogger(out io.Writer, level string) Logger {
	return &levelLogger{
		out:      out,
		min:      parseLevel(level),
		clock:    time.Now,
		levelTag: [4]string{"DEBUG", "INFO", "WARN", "ERROR"},
	}
}

// NewFileLogger opens (or creates) the log file at path for appending and
// returns a leveled logger over it. Close releases the file handle.
func NewFileLogger(path, level string) (Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	l := NewLogger(f, level)
	return l, f, nil
}

func (l *levelLogger) log(level int, msg string, args ...interface{}) {
	if level < l.min {
		return
	}
	stamp := l.clock().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.out, "%s [%s] "+msg+"\n", append([]interface{}{stamp, l.levelTag[level]}, args...)...)
}

func (l *levelLogger) Debug(msg string, args ...interface{}) { l.log(levelDebug, msg, args...) }
func (l *levelLogger) Info(msg string, args ...interface{})  { l.log(levelInfo, msg, args...) }
func (l *levelLogger) Warn(msg string, args ...interface{})  { l.log(levelWarn, msg, args...) }
func (l *levelLogger) Error(msg string, args ...interface{}) { l.log(levelError, msg, args...) }
