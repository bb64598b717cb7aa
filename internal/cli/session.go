package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/internal/presentation/tui"
	"github.com/aretw0/ribbon/pkg/runner"
)

// RunSession loads the machine and drives one run of it. The presentation
// is picked from the options: an animated tape view by default, a plain
// text summary with --headless, an NDJSON event stream with --json.
func RunSession(opts RunOptions) error {
	logger, closeLogs, err := createLogger(opts.Debug, opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLogs()

	sim, err := buildSimulator(opts, logger)
	if err != nil {
		return err
	}

	// The signal context interrupts the run on SIGTERM. In the interactive
	// view SIGINT rarely gets here: raw mode turns Ctrl+C into a key.
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithMaxSteps(opts.MaxSteps),
	}
	if opts.Interval > 0 {
		runnerOpts = append(runnerOpts,
			runner.WithInterval(time.Duration(opts.Interval*float64(time.Second))))
	}

	if opts.JSON {
		r := runner.New(sim, runner.NewJSONHandler(os.Stdout, sim), runnerOpts...)
		return r.Run(sigCtx)
	}

	if opts.Headless {
		handler := runner.NewTextHandler(os.Stdout, sim,
			runner.WithTextHandlerVerbose(opts.Verbose))
		r := runner.New(sim, handler, runnerOpts...)
		return r.Run(sigCtx)
	}

	if err := runInteractive(sigCtx, sim, runnerOpts, logger); err != nil {
		return err
	}
	if !opts.Quiet {
		printSystemMessage("%s at state '%s' (tape %s)",
			sim.Phase(), sim.State(), sim.TapeString())
	}
	return nil
}

// runInteractive drives the run behind the animated tape view. The keyboard
// is switched to raw mode so single keys arrive without Enter; when that
// fails (no tty) the animation still plays, just without key controls.
func runInteractive(ctx context.Context, sim *ribbon.Simulator, runnerOpts []runner.Option, logger *slog.Logger) error {
	restore, err := runner.RawMode(os.Stdin)
	if err != nil {
		logger.Warn("keyboard unavailable, running without key controls", "err", err)
	} else {
		defer restore()
		runnerOpts = append(runnerOpts, runner.WithKeys(runner.ReadKeys(os.Stdin)))
	}

	// The view shows the live interval in its footer; the closure reads it
	// back from the runner once that exists.
	var r *runner.Runner
	view := tui.NewView(sim, tui.WithInterval(func() time.Duration {
		if r == nil {
			return 0
		}
		return r.Interval()
	}))
	r = runner.New(sim, view, runnerOpts...)

	view.Start()
	defer view.Stop()

	return r.Run(ctx)
}
