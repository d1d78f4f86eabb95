package config

import (
	"os"
	"strconv"
)

// Config holds all sawmill configuration.
type Config struct {
	Log  LogConfig
	Eval EvalConfig
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
	Color  bool   // colorize console output when on a terminal
}

// EvalConfig holds evaluation loop settings.
type EvalConfig struct {
	MaxLineBytes int // longest accepted input line
}

// Load reads configuration from environment variables with sensible
// defaults. Command-line flags override these in the CLI.
func Load() Config {
	return Config{
		Log: LogConfig{
			Level:  getenv("SAWMILL_LOG_LEVEL", "info"),
			Format: getenv("SAWMILL_LOG_FORMAT", "text"),
			Color:  getenvBool("SAWMILL_COLOR", true),
		},
		Eval: EvalConfig{
			MaxLineBytes: getenvInt("SAWMILL_MAX_LINE_BYTES", 1024*1024),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
