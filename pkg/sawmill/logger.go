package sawmill

import (
	"errors"
	"maps"
	"sync/atomic"
)

// PutError wraps an error returned by a consumer during Put. The
// pipeline never suppresses consumer errors; callers needing
// resilience wrap their own consumers.
type PutError struct {
	Err error
}

func (e *PutError) Error() string {
	return "sawmill: put: " + e.Err.Error()
}

func (e *PutError) Unwrap() error {
	return e.Err
}

// Logger builds events and runs them through a consumer chain.
// Loggers are immutable; the With* methods return derived copies.
type Logger struct {
	name   string
	chain  Consumer
	fields Fields
}

// New returns a logger bound to name. With no consumers the chain is
// a single Sink writing to the slog default backend.
func New(name string, consumers ...Consumer) *Logger {
	chain := Sink()
	if len(consumers) > 0 {
		chain = Compose(consumers...)
	}
	return &Logger{name: name, chain: chain}
}

// WithName returns a copy of the logger bound to a different name.
func (l *Logger) WithName(name string) *Logger {
	clone := *l
	clone.name = name
	return &clone
}

// WithFields returns a copy of the logger whose events carry the given
// fields in addition to any inherited ones.
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := *l
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(Fields, len(fields))
	}
	maps.Copy(merged, fields)
	clone.fields = merged
	return &clone
}

// WithField returns a copy of the logger with one field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(Fields{key: value})
}

// Put builds an event and runs the chain. It returns the event the
// chain produced, nil when a consumer skipped it, or a *PutError when
// a consumer failed.
func (l *Logger) Put(level Level, format string, args ...any) (*Event, error) {
	e := NewEvent(l.name, level, format, args...)
	if len(l.fields) > 0 {
		e = e.WithFields(l.fields)
	}
	out, err := l.chain(e)
	if err != nil {
		if errors.Is(err, ErrSkip) {
			return nil, nil
		}
		return nil, &PutError{Err: err}
	}
	return &out, nil
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(format string, args ...any) (*Event, error) {
	return l.Put(LevelDebug, format, args...)
}

// Info logs at LevelInfo.
func (l *Logger) Info(format string, args ...any) (*Event, error) {
	return l.Put(LevelInfo, format, args...)
}

// Warn logs at LevelWarn.
func (l *Logger) Warn(format string, args ...any) (*Event, error) {
	return l.Put(LevelWarn, format, args...)
}

// Error logs at LevelError.
func (l *Logger) Error(format string, args ...any) (*Event, error) {
	return l.Put(LevelError, format, args...)
}

// Critical logs at LevelCritical.
func (l *Logger) Critical(format string, args ...any) (*Event, error) {
	return l.Put(LevelCritical, format, args...)
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(""))
}

// Default returns the process-wide logger used by the package-level
// convenience functions. Its initial chain is the sink only.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Debug logs at LevelDebug through the default logger.
func Debug(format string, args ...any) (*Event, error) {
	return Default().Debug(format, args...)
}

// Info logs at LevelInfo through the default logger.
func Info(format string, args ...any) (*Event, error) {
	return Default().Info(format, args...)
}

// Warn logs at LevelWarn through the default logger.
func Warn(format string, args ...any) (*Event, error) {
	return Default().Warn(format, args...)
}

// Error logs at LevelError through the default logger.
func Error(format string, args ...any) (*Event, error) {
	return Default().Error(format, args...)
}

// Critical logs at LevelCritical through the default logger.
func Critical(format string, args ...any) (*Event, error) {
	return Default().Critical(format, args...)
}
