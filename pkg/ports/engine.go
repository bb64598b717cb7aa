package ports

import (
	"context"

	"github.com/aretw0/ribbon/pkg/machine"
)

// Stepper drives a simulation forward. Implementations are not required to
// be safe for concurrent use; hosts serialize access.
type Stepper interface {
	// Advance moves the simulation through exactly one phase of the
	// idle -> found -> changed -> moved cycle. It reports false once the
	// simulation is already in a terminal phase.
	Advance(ctx context.Context) bool

	// Interrupt aborts the run. Interrupting a terminal simulation is a no-op.
	Interrupt(ctx context.Context)

	// Reset rewinds the simulation to the moment before the first advance,
	// restoring the original input tape.
	Reset()
}

// Inspector exposes the observable state of a simulation without allowing
// mutation. Presentation layers render exclusively from this surface.
type Inspector interface {
	// Phase reports where the engine is inside the current logical step.
	Phase() machine.Phase

	// State returns the machine state the engine currently occupies.
	State() machine.State

	// Head returns the tape offset under the head.
	Head() int

	// Symbol returns the symbol under the head.
	Symbol() machine.Symbol

	// Transition returns a copy of the transition being applied, or nil
	// when no transition is in flight.
	Transition() *machine.Transition

	// LastMove returns the head displacement of the most recent move phase.
	LastMove() int

	// Read returns the symbol at an arbitrary tape offset.
	Read(offset int) machine.Symbol

	// TapeWindow returns the symbols in the half-open offset range [from, to).
	TapeWindow(from, to int) []machine.Symbol

	// TapeBounds returns the half-open offset range backed by storage.
	TapeBounds() (lo, hi int)

	// TapeString renders the backed tape with a "|" marker before offset zero.
	TapeString() string

	// Snapshot captures the observable state as a step event.
	Snapshot() *machine.StepEvent
}

// Simulation is the full surface hosts consume: stepping plus inspection.
type Simulation interface {
	Stepper
	Inspector
}
