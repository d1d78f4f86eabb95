package sawmill

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "CRITICAL", LevelCritical.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLevelSlog(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.Slog())
	assert.Equal(t, slog.LevelInfo, LevelInfo.Slog())
	assert.Equal(t, slog.LevelWarn, LevelWarn.Slog())
	assert.Equal(t, slog.LevelError, LevelError.Slog())
	assert.Equal(t, slog.LevelError+4, LevelCritical.Slog())
}

func TestEventString(t *testing.T) {
	e := NewEvent("root", LevelInfo, "hello %s", "world")
	assert.Equal(t, "hello world", e.String())

	e = e.WithField("b", 2).WithField("a", 1)
	assert.Equal(t, "hello world a=1 b=2", e.String(), "fields should render sorted")
}

func TestEventTransformsCopy(t *testing.T) {
	orig := NewEvent("root", LevelDebug, "msg")

	changed := orig.WithFormat("changed").WithLevel(LevelError).WithArgs(1)
	assert.Equal(t, "msg", orig.Format)
	assert.Equal(t, LevelDebug, orig.Level)
	assert.Empty(t, orig.Args)

	assert.Equal(t, "changed", changed.Format)
	assert.Equal(t, LevelError, changed.Level)
	assert.Equal(t, []any{1}, changed.Args)
	assert.Equal(t, "root", changed.Name, "transforms must preserve the logger name")
}

func TestEventWithFieldsDoesNotShareMap(t *testing.T) {
	orig := NewEvent("root", LevelInfo, "msg").WithField("k", "v")
	derived := orig.WithFields(Fields{"k": "other", "x": 1})

	assert.Equal(t, "v", orig.Fields["k"])
	assert.Equal(t, "other", derived.Fields["k"])
	assert.NotContains(t, orig.Fields, "x")
}

func TestEventWithArgsAppends(t *testing.T) {
	e := NewEvent("", LevelInfo, "%s %s", "first")
	e2 := e.WithArgs("second")

	assert.Equal(t, []any{"first"}, e.Args)
	assert.Equal(t, []any{"first", "second"}, e2.Args)
	assert.Equal(t, "first second", e2.Message())
}

func TestEventWithName(t *testing.T) {
	e := NewEvent("a", LevelInfo, "msg")
	assert.Equal(t, "b", e.WithName("b").Name)
	assert.Equal(t, "a", e.Name)
}
