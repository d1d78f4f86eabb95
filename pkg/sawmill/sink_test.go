package sawmill

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textBackend returns an slog logger writing deterministic text lines
// (no timestamps) into buf.
func textBackend(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func TestSinkOnlyChainMatchesBackendOutput(t *testing.T) {
	var direct, viaChain bytes.Buffer

	textBackend(&direct).Info("hello world")

	l := New("", SinkTo(textBackend(&viaChain)))
	_, err := l.Info("hello world")
	require.NoError(t, err)

	assert.Equal(t, direct.String(), viaChain.String(),
		"a chain of only the sink must reproduce the backend's default output")
}

func TestSinkSeesRewrittenFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("",
		Map(func(e Event) Event { return e.WithFormat("mapped " + e.Format) }),
		SinkTo(textBackend(&buf)),
	)

	_, err := l.Info("msg")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "mapped msg")
	assert.NotContains(t, buf.String(), `msg="msg"`)
}

func TestSinkToAttachesNameAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("ingest", SinkTo(textBackend(&buf))).WithField("job", 12)

	_, err := l.Warn("slow")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "logger=ingest")
	assert.Contains(t, out, "job=12")
	assert.Contains(t, out, "msg=slow")
}

func TestSinkCriticalLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("", SinkTo(textBackend(&buf)))

	_, err := l.Critical("down")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=ERROR+4")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	l := New("", WriterSink(&buf)).WithField("a", 1)

	_, err := l.Info("hello %s", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world a=1\n", buf.String())
}

type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestWriterSinkPropagatesWriteError(t *testing.T) {
	boom := errors.New("disk full")
	l := New("", WriterSink(errWriter{err: boom}))

	_, err := l.Info("msg")
	var putErr *PutError
	require.ErrorAs(t, err, &putErr)
	assert.ErrorIs(t, err, boom)
}

func TestConsoleSinkNoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	sink := ConsoleSink(&buf, true)

	_, err := sink(NewEvent("api", LevelError, "broken %s", "pipe"))
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "\033[", "color must be disabled off a terminal")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "api broken pipe")
}

func TestConsoleSinkRendersFields(t *testing.T) {
	var buf bytes.Buffer
	sink := ConsoleSink(&buf, false)

	_, err := sink(NewEvent("", LevelInfo, "done").WithField("took", "3ms"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "done took=3ms")
}
