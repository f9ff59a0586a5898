package calculation

import (
	"fmt"
	"io"
	"log"
)

// Logger is a minimal logging interface for the amortization engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// LevelLogger writes entries at or above Min to a standard library logger.
type LevelLogger struct {
	Min Level
	out *log.Logger
}

// NewLevelLogger logs to w with a timestamp prefix.
func NewLevelLogger(w io.Writer, min Level) *LevelLogger {
	return &LevelLogger{Min: min, out: log.New(w, "", log.LstdFlags)}
}

func (l *LevelLogger) logf(level Level, format string, args ...any) {
	if level < l.Min {
		return
	}
	l.out.Printf("[%s] %s", levelTags[level], fmt.Sprintf(format, args...))
}

func (l *LevelLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *LevelLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *LevelLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *LevelLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
