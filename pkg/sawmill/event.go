package sawmill

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Level is the severity of a log event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}

// String returns the level name, or "UNKNOWN" for out-of-range values.
func (l Level) String() string {
	if l < LevelDebug || l > LevelCritical {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Slog maps the level onto the slog scale. Critical has no slog
// equivalent and maps above LevelError.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelError
	}
}

// Fields holds keyword arguments attached to an event.
type Fields map[string]any

// Event describes one logging call: the bound logger name, severity,
// message format string, positional arguments, and keyword fields.
//
// Events are values. Transforms (WithLevel, WithFormat, ...) return a
// modified copy; each stage of a consumer chain receives the event
// produced by the previous stage and never mutates a shared instance.
type Event struct {
	Name   string
	Level  Level
	Format string
	Args   []any
	Fields Fields
}

// NewEvent returns a fresh event for one logging call.
func NewEvent(name string, level Level, format string, args ...any) Event {
	return Event{
		Name:   name,
		Level:  level,
		Format: format,
		Args:   args,
	}
}

// WithLevel returns a copy of the event with the level replaced.
func (e Event) WithLevel(level Level) Event {
	e.Level = level
	return e
}

// WithFormat returns a copy of the event with the format string replaced.
func (e Event) WithFormat(format string) Event {
	e.Format = format
	return e
}

// WithName returns a copy of the event bound to a different logger name.
func (e Event) WithName(name string) Event {
	e.Name = name
	return e
}

// WithArgs returns a copy of the event with args appended to the
// existing positional arguments.
func (e Event) WithArgs(args ...any) Event {
	e.Args = append(slices.Clone(e.Args), args...)
	return e
}

// WithField returns a copy of the event with one keyword field set.
func (e Event) WithField(key string, value any) Event {
	fields := maps.Clone(e.Fields)
	if fields == nil {
		fields = make(Fields, 1)
	}
	fields[key] = value
	e.Fields = fields
	return e
}

// WithFields returns a copy of the event with the given fields merged
// over the existing ones.
func (e Event) WithFields(fields Fields) Event {
	if len(fields) == 0 {
		return e
	}
	merged := maps.Clone(e.Fields)
	if merged == nil {
		merged = make(Fields, len(fields))
	}
	maps.Copy(merged, fields)
	e.Fields = merged
	return e
}

// Message renders the format string with the positional arguments.
func (e Event) Message() string {
	if len(e.Args) == 0 {
		return e.Format
	}
	return fmt.Sprintf(e.Format, e.Args...)
}

// String renders the message followed by the keyword fields as sorted
// key=value pairs.
func (e Event) String() string {
	msg := e.Message()
	if len(e.Fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	keys := maps.Keys(e.Fields)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, e.Fields[key])
	}
	return b.String()
}
