package timeslice

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for per-batch detail, of interest when diagnosing
	// scheduling behavior.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for task lifecycle events.
	LogLevelInfo
	// LogLevelWarn is for situations that might require attention.
	LogLevelWarn
	// LogLevelError is for errors that still allow the task to continue.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the interface tasks log through. Implementations can route
// messages anywhere; if none is provided, no logging occurs.
type Logger interface {
	// Log writes a message at the given level. The message is formatted
	// with fmt.Sprintf when args are provided.
	Log(level LogLevel, format string, args ...interface{})

	// Debug logs a debug-level message.
	Debug(format string, args ...interface{})

	// Info logs an info-level message.
	Info(format string, args ...interface{})

	// Warn logs a warning-level message.
	Warn(format string, args ...interface{})

	// Error logs an error-level message.
	Error(format string, args ...interface{})
}

// NoOpLogger discards all log messages. It is the default when no logger
// is specified.
type NoOpLogger struct{}

// Log implements the Logger interface.
func (n *NoOpLogger) Log(level LogLevel, format string, args ...interface{}) {}

// Debug implements the Logger interface.
func (n *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info implements the Logger interface.
func (n *NoOpLogger) Info(format string, args ...interface{}) {}

// Warn implements the Logger interface.
func (n *NoOpLogger) Warn(format string, args ...interface{}) {}

// Error implements the Logger interface.
func (n *NoOpLogger) Error(format string, args ...interface{}) {}

// SimpleLogger writes to stdout/stderr with the standard log package.
// Debug and Info go to stdout, Warn and Error to stderr.
type SimpleLogger struct {
	// MinLevel is the minimum level to output. Lower levels are discarded.
	MinLevel LogLevel

	// StdoutLogger handles Debug and Info messages.
	StdoutLogger *log.Logger

	// StderrLogger handles Warn and Error messages.
	StderrLogger *log.Logger
}

// NewSimpleLogger creates a SimpleLogger with the given minimum level.
func NewSimpleLogger(minLevel LogLevel) *SimpleLogger {
	return &SimpleLogger{
		MinLevel:     minLevel,
		StdoutLogger: log.New(os.Stdout, "", log.LstdFlags),
		StderrLogger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Log implements the Logger interface.
func (s *SimpleLogger) Log(level LogLevel, format string, args ...interface{}) {
	if level < s.MinLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	prefix := fmt.Sprintf("[%s] ", level.String())

	switch level {
	case LogLevelDebug, LogLevelInfo:
		s.StdoutLogger.Printf("%s%s", prefix, msg)
	case LogLevelWarn, LogLevelError:
		s.StderrLogger.Printf("%s%s", prefix, msg)
	}
}

// Debug implements the Logger interface.
func (s *SimpleLogger) Debug(format string, args ...interface{}) {
	s.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (s *SimpleLogger) Info(format string, args ...interface{}) {
	s.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (s *SimpleLogger) Warn(format string, args ...interface{}) {
	s.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (s *SimpleLogger) Error(format string, args ...interface{}) {
	s.Log(LogLevelError, format, args...)
}

// ZerologLogger routes task logging through a zerolog.Logger, so task
// output blends into an application's structured logs.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps zl in a Logger.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Log implements the Logger interface.
func (z *ZerologLogger) Log(level LogLevel, format string, args ...interface{}) {
	var ev *zerolog.Event
	switch level {
	case LogLevelDebug:
		ev = z.zl.Debug()
	case LogLevelInfo:
		ev = z.zl.Info()
	case LogLevelWarn:
		ev = z.zl.Warn()
	case LogLevelError:
		ev = z.zl.Error()
	default:
		ev = z.zl.Info()
	}
	ev.Msgf(format, args...)
}

// Debug implements the Logger interface.
func (z *ZerologLogger) Debug(format string, args ...interface{}) {
	z.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (z *ZerologLogger) Info(format string, args ...interface{}) {
	z.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (z *ZerologLogger) Warn(format string, args ...interface{}) {
	z.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (z *ZerologLogger) Error(format string, args ...interface{}) {
	z.Log(LogLevelError, format, args...)
}
