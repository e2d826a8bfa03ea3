// internal/logger/logger.go
package logger

import (
	"fmt"
	"strings"

	"github.com/tamzrod/wakecell/internal/clock"
)

// Sink appends one finished line. Formatting belongs to Logger.
type Sink interface {
	WriteLine(text string)
}

// LevelSink is implemented by sinks that route on severity.
// Logger hands them the level instead of making them parse the line.
type LevelSink interface {
	Sink
	WriteLevel(level Level, text string)
}

// Level is the line severity.
type Level uint8

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger prefixes each message with uptime and severity:
//
//	0001T02:03:04 INFO: message
type Logger struct {
	clk  clock.Clock
	sink Sink
}

// New builds a logger. Both dependencies are injected; there is no global logger.
func New(c clock.Clock, sink Sink) *Logger {
	return &Logger{clk: c, sink: sink}
}

func (l *Logger) Info(msg string) {
	l.log(LevelInfo, msg)
}

func (l *Logger) Error(msg string) {
	l.log(LevelError, msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) log(level Level, msg string) {
	if l == nil || l.sink == nil {
		return
	}
	line := TimeString(l.clk.NowMillis()) + " " + level.String() + ": " + msg
	if ls, ok := l.sink.(LevelSink); ok {
		ls.WriteLevel(level, line)
		return
	}
	l.sink.WriteLine(line)
}

// ParseLevel reads the severity of a finished line from the field right
// after the time string. Message text is never inspected.
func ParseLevel(line string) Level {
	_, rest, ok := strings.Cut(line, " ")
	if ok && strings.HasPrefix(rest, LevelError.String()+": ") {
		return LevelError
	}
	return LevelInfo
}

// TimeString renders uptime as DDDDTHH:MM:SS.
// It follows the tick counter, so it restarts after a wrap.
func TimeString(ms uint32) string {
	total := ms / 1000
	seconds := total % 60
	minutes := (total / 60) % 60
	hours := (total / 3600) % 24
	days := total / 86400
	return fmt.Sprintf("%04dT%02d:%02d:%02d", days, hours, minutes, seconds)
}
