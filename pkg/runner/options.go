package runner

import (
	"log/slog"
	"time"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithKeys attaches a keyboard. Without one the runner never blocks on
// input: controls are disabled and the run exits as soon as it halts.
func WithKeys(keys <-chan rune) Option {
	return func(r *Runner) {
		r.keys = keys
	}
}

// WithInterval sets the starting pace. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithMaxSteps caps the number of logical steps before the run is
// interrupted. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
