package grist

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Log levels understood by the GRIST_LOGLEVEL environment variable.
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// StderrLogger is a minimal Logger writing one line per message to stderr.
// Its level is taken from the GRIST_LOGLEVEL environment variable (DEBUG,
// INFO, WARNING, ERROR); unset or unrecognized values default to INFO.
type StderrLogger struct {
	level int
}

// NewStderrLogger creates a logger honoring GRIST_LOGLEVEL.
func NewStderrLogger() *StderrLogger {
	level := levelInfo

	switch strings.ToUpper(os.Getenv("GRIST_LOGLEVEL")) {
	case "DEBUG":
		level = levelDebug
	case "INFO":
		level = levelInfo
	case "WARN", "WARNING":
		level = levelWarn
	case "ERROR":
		level = levelError
	}

	return &StderrLogger{level: level}
}

// Debug implements Logger.Debug.
func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(levelDebug, "DEBUG", msg, fields)
}

// Info implements Logger.Info.
func (l *StderrLogger) Info(msg string, fields map[string]interface{}) {
	l.log(levelInfo, "INFO", msg, fields)
}

// Warn implements Logger.Warn.
func (l *StderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(levelWarn, "WARNING", msg, fields)
}

// Error implements Logger.Error.
func (l *StderrLogger) Error(msg string, fields map[string]interface{}) {
	l.log(levelError, "ERROR", msg, fields)
}

func (l *StderrLogger) log(level int, name, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	var builder strings.Builder

	builder.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	builder.WriteString(" " + name + " grist_api " + msg)

	// Sorted for stable output.
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		builder.WriteString(fmt.Sprintf(" %s=%v", key, fields[key]))
	}

	fmt.Fprintln(os.Stderr, builder.String())
}
