package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with a Fatal level for startup failures.
type Logger struct {
	*slog.Logger
}

// New returns a text-format Logger writing to stdout at the given level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
