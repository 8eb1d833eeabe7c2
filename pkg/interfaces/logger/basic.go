package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level orders log severities for BasicLogger filtering.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel maps a level name (debug, info, warn, error) to a Level.
// Unknown names resolve to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// BasicLogger prints key=value log lines to a writer.
type BasicLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	min    Level
	fields []Field
}

var _ Logger = (*BasicLogger)(nil)

// New returns a basic logger writing to stdout at info level.
func New() *BasicLogger {
	return NewWithWriter(os.Stdout, LevelInfo)
}

// NewWithWriter returns a basic logger writing lines at or above min to out.
func NewWithWriter(out io.Writer, min Level) *BasicLogger {
	if out == nil {
		out = os.Stdout
	}
	return &BasicLogger{
		mu:  &sync.Mutex{},
		out: out,
		min: min,
	}
}

// Default returns the default basic logger implementation.
func Default() Logger {
	return New()
}

// With returns a logger that includes fields on each log line.
func (l *BasicLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	next := &BasicLogger{
		mu:     l.mu,
		out:    l.out,
		min:    l.min,
		fields: make([]Field, 0, len(l.fields)+len(fields)),
	}
	next.fields = append(next.fields, l.fields...)
	next.fields = append(next.fields, fields...)
	return next
}

func (l *BasicLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *BasicLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *BasicLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *BasicLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *BasicLogger) log(level Level, msg string, fields []Field) {
	if level < l.min {
		return
	}
	line := fmt.Sprintf("[%s] %s", levelNames[level], msg)
	if rendered := formatFields(append(append([]Field(nil), l.fields...), fields...)); rendered != "" {
		line += " " + rendered
	}
	l.mu.Lock()
	fmt.Fprintln(l.out, line)
	l.mu.Unlock()
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	sorted := append([]Field(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	parts := make([]string, 0, len(sorted))
	for _, f := range sorted {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}
