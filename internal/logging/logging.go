// Package logging adapts zerolog to the cms.Logger interface.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// Logger implements cms.Logger on top of a zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

// New returns a JSON logger writing to w at the given level ("debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}

	zl := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))

	return &Logger{logger: zl}
}

// NewConsole returns a human-readable logger for terminals.
func NewConsole(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	return &Logger{logger: zerolog.New(console).With().Timestamp().Logger().Level(ParseLevel(level))}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(zl zerolog.Logger) *Logger {
	return &Logger{logger: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return parsed
}

// Component returns a child logger tagged with component.
func (l *Logger) Component(component string) *Logger {
	return &Logger{logger: l.logger.With().Str("component", component).Logger()}
}

// Zerolog exposes the underlying logger for packages that log natively.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Debug implements cms.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.write(l.logger.Debug(), msg, fields)
}

// Info implements cms.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.write(l.logger.Info(), msg, fields)
}

// Warn implements cms.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.write(l.logger.Warn(), msg, fields)
}

// Error implements cms.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.write(l.logger.Error(), msg, fields)
}

func (l *Logger) write(event *zerolog.Event, msg string, fields map[string]interface{}) {
	if event == nil {
		return
	}

	for key, value := range fields {
		if strings.EqualFold(key, constants.APIKeyHeader) || strings.EqualFold(key, "api_key") {
			continue
		}

		switch v := value.(type) {
		case error:
			event = event.AnErr(key, v)
		case time.Duration:
			event = event.Dur(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg(msg)
}

var _ cms.Logger = (*Logger)(nil)
