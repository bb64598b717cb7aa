package runner

import (
	"context"

	"github.com/aretw0/ribbon/pkg/machine"
)

// IOHandler defines the strategy for presenting a run.
// This allows switching between TUI (fullscreen), Text and JSON (NDJSON) modes.
type IOHandler interface {
	// Output presents one step event. It is called once before the first
	// advance and after every advance, including the one that halts the run.
	Output(ctx context.Context, event *machine.StepEvent) error

	// Halt presents the final event once, after the run turned terminal.
	Halt(ctx context.Context, event *machine.StepEvent) error
}
