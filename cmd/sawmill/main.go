package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/crimson-sun/sawmill/internal/config"
	"github.com/crimson-sun/sawmill/internal/eval"
	"github.com/crimson-sun/sawmill/internal/logging"
	"github.com/crimson-sun/sawmill/internal/pipeline"
	"github.com/crimson-sun/sawmill/pkg/sawmill"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "sawmill",
		Usage:     "evaluate an expression against each line of stdin",
		ArgsUsage: "expression [expression ...]",
		Description: `x is the current line (numeric lines bind as numbers), n is the
1-based line number. Expressions run in order: false drops the line,
true keeps the current value, any other result becomes the new value.

Map lines:

   $ seq 3 | sawmill 'x * 10'
   10
   20
   30

Filter lines:

   $ seq 3 | sawmill 'x > 1'
   2
   3

Map + filter:

   $ seq 10 | sawmill 'x % 2 == 1' 'x * 1.5'
   1.5
   4.5
   7.5
   10.5
   13.5

Aggregate with -i bindings and a final -e expression:

   $ seq 5 | sawmill 'tally(x)' -e 'total() / n'
   1
   3
   6
   10
   15
   3`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "init",
				Aliases: []string{"i"},
				Usage:   "binding of the form 'name = expression', evaluated once before processing",
			},
			&cli.StringFlag{
				Name:    "last",
				Aliases: []string{"e"},
				Usage:   "expression evaluated once after end of input",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging of each expression invocation",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()

	level := logging.ParseLevel(cfg.Log.Level)
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logging.Init(cfg.Log.Format, level)

	diag := diagnostics(os.Stderr, cfg.Log)

	exprs := c.Args().Slice()
	if len(exprs) == 0 {
		cli.ShowAppHelp(c)
		return cli.Exit("sawmill: at least one expression is required", 1)
	}

	prog, err := eval.Compile(exprs, c.StringSlice("init"), c.String("last"))
	if err != nil {
		return cli.Exit("sawmill: "+err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(prog, os.Stdout,
		pipeline.WithMaxLineBytes(cfg.Eval.MaxLineBytes),
		pipeline.WithOnError(func(err error) {
			diag.Error("%s", err)
		}),
	)
	return exitError(p.Run(ctx, os.Stdin))
}

// diagnostics builds the logger used for user-facing messages on w,
// honoring the configured color setting. Diagnostics go through the
// library's own console sink, never stdout.
func diagnostics(w io.Writer, cfg config.LogConfig) *sawmill.Logger {
	return sawmill.New("sawmill", sawmill.ConsoleSink(w, cfg.Color))
}

// exitError maps the pipeline result to the process exit status.
// A cancelled context is a clean shutdown, not a failure.
func exitError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return cli.Exit("sawmill: "+err.Error(), 1)
}
