package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"obd-dashboard.klederson.com/internal/errors"
)

var log = zerolog.Nop()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

// Init points the logger at w. Each run is tagged with a fresh session id.
func Init(w io.Writer, level LogLevel) {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}

	log = zerolog.New(output).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()

	SetLogLevel(level)
}

// InitFile opens path for appending and logs there. The terminal UI owns
// stdout, so this is the normal entry point.
func InitFile(path string, level LogLevel) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	Init(f, level)
	return f, nil
}

// ParseLevel maps a config string to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// WarnWithCode logs a warning carrying the error's code.
func WarnWithCode(err error) *LogEvent {
	return withCode(log.Warn(), err)
}

// ErrorWithCode logs an error message with its error code, if it has one.
func ErrorWithCode(err error) *LogEvent {
	return withCode(log.Error(), err)
}

func withCode(ev *zerolog.Event, err error) *LogEvent {
	if code, ok := errors.CodeOf(err); ok {
		ev = ev.Str("error_code", string(code))
	}
	return &LogEvent{ev.Err(err)}
}
