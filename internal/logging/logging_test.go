package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestInitSetsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	Init("text", slog.LevelWarn)

	assert.False(t, slog.Default().Enabled(nil, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(nil, slog.LevelWarn))
}

func TestInitJSONFormat(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	Init("json", slog.LevelDebug)
	_, isJSON := slog.Default().Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)

	Init("TEXT", slog.LevelDebug)
	_, isText := slog.Default().Handler().(*slog.TextHandler)
	assert.True(t, isText)
}
