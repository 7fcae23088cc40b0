package logger

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"github.com/rs/zerolog"
)

// AppLogger fans log lines out to the UI log list and a leveled console sink.
type AppLogger struct {
	dataBinding binding.StringList
	console     zerolog.Logger
}

// NewAppLogger creates a new logger instance bound to the given UI list.
func NewAppLogger(data binding.StringList) *AppLogger {
	console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Str("component", "capture").Logger()
	return &AppLogger{
		dataBinding: data,
		console:     console,
	}
}

// SetLevel adjusts the console sink level ("debug", "info", "warn", "error").
func (l *AppLogger) SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.DebugLevel
	}
	l.console = l.console.Level(lvl)
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.console.Info().Msg(msg)
	l.appendUI("INFO", msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.console.Warn().Msg(msg)
	l.appendUI("WARN", msg)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.console.Error().Msg(msg)
	l.appendUI("ERROR", msg)
}

// Debug logs to the console sink only (to keep the UI clean)
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.console.Debug().Msg(fmt.Sprintf(format, args...))
}

// appendUI pushes a formatted line into the bound list, keeping it bounded
func (l *AppLogger) appendUI(level, msg string) {
	if l.dataBinding == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	l.dataBinding.Append(fmt.Sprintf("[%s] %s: %s", timestamp, level, msg))

	// Keep log size manageable (e.g., last 100 lines)
	list, _ := l.dataBinding.Get()
	if len(list) > 100 {
		l.dataBinding.Set(list[1:])
	}
}
