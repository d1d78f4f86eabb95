// Package pipeline connects an input stream, a compiled eval.Program,
// and an output writer into the per-line processing loop.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/sawmill/internal/eval"
)

const defaultMaxLineBytes = 1024 * 1024

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxLineBytes caps the length of a single input line.
// Default: 1 MiB.
func WithMaxLineBytes(n int) Option {
	return func(p *Pipeline) { p.maxLineBytes = n }
}

// WithOnError sets the callback invoked when evaluating a line (or the
// final expression) fails. The failing line is skipped and processing
// continues. Default: errors are discarded.
func WithOnError(f func(error)) Option {
	return func(p *Pipeline) { p.onError = f }
}

// Pipeline runs a compiled program over every line of an input stream
// and prints each produced value to the output writer.
type Pipeline struct {
	prog         *eval.Program
	out          io.Writer
	onError      func(error)
	maxLineBytes int
}

// New creates a Pipeline writing results to out.
func New(prog *eval.Program, out io.Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		prog:         prog,
		out:          out,
		onError:      func(error) {},
		maxLineBytes: defaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads r line by line until end of input, evaluating the program
// against each line and printing produced values. After end of input
// the program's final expression, if any, runs once. Blocks until EOF,
// a read error, or context cancellation.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	initial := 64 * 1024
	if p.maxLineBytes < initial {
		initial = p.maxLineBytes
	}
	sc.Buffer(make([]byte, 0, initial), p.maxLineBytes)

	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		result, ok, err := p.prog.Eval(sc.Text(), n)
		if err != nil {
			p.onError(err)
			continue
		}
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(p.out, result); err != nil {
			return fmt.Errorf("pipeline write: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("pipeline read: %w", err)
	}

	result, ok, err := p.prog.Final(n)
	if err != nil {
		p.onError(err)
		return nil
	}
	if ok {
		if _, err := fmt.Fprintln(p.out, result); err != nil {
			return fmt.Errorf("pipeline write: %w", err)
		}
	}
	return nil
}
