// Package ports defines the interfaces between offergen stages and their adapters.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for stage-internal details such as resolved layouts.
	LevelDebug LogLevel = iota
	// LevelInfo is for orchestration progress.
	LevelInfo
	// LevelWarn is for recovered problems, e.g. a missing font.
	LevelWarn
	// LevelError is for failures that abort a request.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a string into a LogLevel. Unknown values map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i)
		}
	}
	if s == "warning" {
		return LevelWarn
	}
	return LevelInfo
}

// Logger abstracts logging operations with multi-language support.
// The msg parameter is a message key that adapters may translate.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
