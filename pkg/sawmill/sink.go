package sawmill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/maps"

	"github.com/mattn/go-isatty"
)

// Sink returns the terminal consumer writing to the process-wide slog
// default backend. The backend is resolved at write time, so chains
// built before slog.SetDefault still pick up the configured handler.
func Sink() Consumer {
	return func(e Event) (Event, error) {
		write(slog.Default(), e)
		return e, nil
	}
}

// SinkTo returns a terminal consumer writing to an explicit backend.
func SinkTo(backend *slog.Logger) Consumer {
	return func(e Event) (Event, error) {
		write(backend, e)
		return e, nil
	}
}

func write(backend *slog.Logger, e Event) {
	attrs := make([]any, 0, 2*(len(e.Fields)+1))
	if e.Name != "" {
		attrs = append(attrs, "logger", e.Name)
	}
	keys := maps.Keys(e.Fields)
	slices.Sort(keys)
	for _, key := range keys {
		attrs = append(attrs, key, e.Fields[key])
	}
	backend.Log(context.Background(), e.Level.Slog(), e.Message(), attrs...)
}

// WriterSink returns a consumer that writes the event's rendered
// string followed by a newline. Useful for tests and plain-text
// destinations; write errors abort the chain.
func WriterSink(w io.Writer) Consumer {
	var mu sync.Mutex
	return func(e Event) (Event, error) {
		mu.Lock()
		defer mu.Unlock()
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return e, fmt.Errorf("sawmill: writer sink: %w", err)
		}
		return e, nil
	}
}

// ConsoleSink returns a consumer that writes human-readable lines of
// the form "ts LEVEL name message k=v ...". Level names are colored
// when useColor is true and w is a terminal.
func ConsoleSink(w io.Writer, useColor bool) Consumer {
	if useColor {
		f, ok := w.(*os.File)
		if !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
			useColor = false
		}
	}

	var mu sync.Mutex
	return func(e Event) (Event, error) {
		line := fmt.Sprintf("%s %s %s\n",
			time.Now().UTC().Format(time.RFC3339),
			colorLevel(e.Level, useColor),
			consoleBody(e))

		mu.Lock()
		defer mu.Unlock()
		if _, err := io.WriteString(w, line); err != nil {
			return e, fmt.Errorf("sawmill: console sink: %w", err)
		}
		return e, nil
	}
}

func consoleBody(e Event) string {
	if e.Name == "" {
		return e.String()
	}
	return e.Name + " " + e.String()
}

func colorLevel(level Level, useColor bool) string {
	name := level.String()
	if !useColor {
		return name
	}
	switch level {
	case LevelDebug:
		return "\033[35m" + name + "\033[0m"
	case LevelInfo:
		return "\033[34m" + name + "\033[0m"
	case LevelWarn:
		return "\033[33m" + name + "\033[0m"
	case LevelError, LevelCritical:
		return "\033[31m" + name + "\033[0m"
	default:
		return name
	}
}
