package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a thin leveled wrapper around slog with the key/value call style
// used throughout the service.
type Logger struct {
	logger *slog.Logger
	level  Level
}

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// New creates a logger writing to stdout.
func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a logger writing text records to w.
func NewWithWriter(w io.Writer, level string) *Logger {
	parsed := parseLevel(level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parsed.slogLevel(),
	})
	return &Logger{
		logger: slog.New(handler),
		level:  parsed,
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error")
}

func parseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Level returns the configured minimum level.
func (l *Logger) Level() Level {
	return l.level
}

// With returns a child logger that attaches args to every record.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		logger: l.logger.With(args...),
		level:  l.level,
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs msg with err attached under the "error" key. err may be nil.
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...interface{}) {
	// odd trailing key is dropped rather than rendered as !BADKEY
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}
	l.logger.Log(context.Background(), level, msg, args...)
}
