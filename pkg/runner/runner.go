package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/ports"
)

const (
	// DefaultInterval is the classic animation pace.
	DefaultInterval = 300 * time.Millisecond
	// MinInterval is the fastest pace "a" can reach.
	MinInterval = 100 * time.Millisecond
	// IntervalDelta is how much a single key press changes the pace.
	IntervalDelta = 100 * time.Millisecond
)

// Runner paces a simulation and streams its step events to an IOHandler.
// It owns the keyboard: keys are handled between steps, during the wait,
// so a running machine is never mutated mid-phase.
//
// A Runner drives one run on one goroutine; it is not reusable.
type Runner struct {
	sim     ports.Simulation
	handler IOHandler

	keys     <-chan rune
	interval time.Duration
	maxSteps int
	logger   *slog.Logger
}

// New creates a Runner over the given simulation and presentation handler.
func New(sim ports.Simulation, handler IOHandler, opts ...Option) *Runner {
	r := &Runner{
		sim:      sim,
		handler:  handler,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Interval returns the current pace. The runner mutates it only between
// steps on its own goroutine, so handlers may read it while rendering.
func (r *Runner) Interval() time.Duration { return r.interval }

// Run executes the loop until the simulation halts: render, wait, advance,
// repeat. The event that turns the run terminal is still rendered and paced;
// afterwards Halt presents the final state and, when a keyboard is attached,
// the runner blocks until any key is pressed.
//
// Cancelling ctx interrupts the run; the loop then winds down normally so
// the interrupted state is still presented.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("run starting", "interval", r.interval, "max_steps", r.maxSteps)

	if err := r.handler.Output(ctx, r.sim.Snapshot()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	r.pause(ctx)

	steps := 0
	for r.sim.Advance(ctx) {
		event := r.sim.Snapshot()
		if err := r.handler.Output(ctx, event); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		if event.Phase == machine.PhaseMoved {
			steps++
			if r.maxSteps > 0 && steps >= r.maxSteps {
				r.logger.Debug("step cap reached", "steps", steps)
				r.sim.Interrupt(ctx)
			}
		}

		r.pause(ctx)
	}

	if err := r.handler.Halt(ctx, r.sim.Snapshot()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	r.waitForKey(ctx)

	r.logger.Debug("run finished", "phase", r.sim.Phase(), "steps", steps)
	return nil
}

// pause waits out the configured interval, reacting to keys while waiting.
// The deadline tracks the interval live: slowing down mid-wait extends the
// current pause and accelerating can end it at once. Keys never restart the
// wait.
func (r *Runner) pause(ctx context.Context) {
	start := time.Now()
	for {
		left := r.interval - time.Since(start)
		if left <= 0 {
			return
		}

		timer := time.NewTimer(left)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.sim.Interrupt(ctx)
			return
		case key, ok := <-r.keys:
			timer.Stop()
			if !ok {
				// Keyboard is gone; a nil channel blocks forever.
				r.keys = nil
				continue
			}
			r.handleKey(ctx, key)
		case <-timer.C:
			return
		}
	}
}

func (r *Runner) handleKey(ctx context.Context, key rune) {
	switch key {
	case 's':
		r.interval += IntervalDelta
		r.logger.Debug("slowed down", "interval", r.interval)
	case 'a':
		r.interval -= IntervalDelta
		if r.interval < MinInterval {
			r.interval = MinInterval
		}
		r.logger.Debug("accelerated", "interval", r.interval)
	case 'q', keyInterrupt:
		r.logger.Debug("interrupt requested")
		r.sim.Interrupt(ctx)
	}
}

// waitForKey blocks until any key arrives. Without a keyboard it returns at
// once, so piped and headless runs never hang on exit.
func (r *Runner) waitForKey(ctx context.Context) {
	if r.keys == nil {
		return
	}
	select {
	case <-ctx.Done():
	case <-r.keys:
	}
}
