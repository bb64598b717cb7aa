// Package sim implements the micro-step execution engine. Each call to
// Advance moves the machine through exactly one phase of a logical step, so
// a host can render or record every intermediate moment instead of only the
// end of a transition.
package sim

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/tape"
)

// Engine drives a single machine over a single tape. It is a deterministic
// state walker: no goroutines, no clocks, no IO. Pacing, keyboards and
// rendering belong to the host.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	machine *machine.Machine
	input   []machine.Symbol

	tape       *tape.Tape
	state      machine.State
	head       int
	phase      machine.Phase
	transition *machine.Transition
	lastMove   int

	hooks  machine.Hooks
	logger *slog.Logger
}

// NewEngine prepares an engine at the start of the run: head at offset
// zero, machine in its initial state, tape seeded with input.
func NewEngine(m *machine.Machine, input []machine.Symbol, opts ...EngineOption) *Engine {
	e := &Engine{
		machine: m,
		input:   append([]machine.Symbol(nil), input...),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e.Reset()
	return e
}

// Reset rewinds the engine to the moment before the first advance. The tape
// is reseeded from the original input, so a reset run replays identically.
func (e *Engine) Reset() {
	e.tape = tape.New(e.input)
	e.state = e.machine.Initial
	e.head = 0
	e.phase = machine.PhaseIdle
	e.transition = nil
	e.lastMove = 0
}

// Advance moves the engine through one phase. It reports whether the engine
// did anything: the call that discovers a missing transition still returns
// true (it is the move into the finished phase); only calls on an already
// terminal engine return false.
func (e *Engine) Advance(ctx context.Context) bool {
	switch e.phase {
	case machine.PhaseIdle:
		cond := e.condition()
		effect, ok := e.machine.Table.Lookup(cond)
		if !ok {
			e.setPhase(ctx, machine.PhaseFinished)
			return true
		}
		e.transition = &machine.Transition{Condition: cond, Effect: effect}
		e.setPhase(ctx, machine.PhaseFoundTransition)
		return true

	case machine.PhaseFoundTransition:
		e.state = e.transition.Effect.Next
		e.tape.Set(e.head, e.transition.Effect.Write)
		e.setPhase(ctx, machine.PhaseChangedState)
		return true

	case machine.PhaseChangedState:
		e.lastMove = e.transition.Effect.Move.Displacement()
		e.head += e.lastMove
		e.setPhase(ctx, machine.PhaseMoved)
		return true

	case machine.PhaseMoved:
		e.transition = nil
		e.setPhase(ctx, machine.PhaseIdle)
		return true
	}

	return false
}

// Interrupt aborts the run. It does nothing once the engine is terminal:
// finished and interrupted are absorbing.
func (e *Engine) Interrupt(ctx context.Context) {
	if e.phase.Terminal() {
		return
	}
	e.setPhase(ctx, machine.PhaseInterrupted)
}

func (e *Engine) condition() machine.Condition {
	return machine.Condition{State: e.state, Symbol: e.tape.Get(e.head)}
}

func (e *Engine) setPhase(ctx context.Context, p machine.Phase) {
	e.phase = p
	e.logger.Debug("phase changed",
		"phase", p,
		"state", e.state,
		"head", e.head,
	)

	event := e.Snapshot()
	if e.hooks.OnPhase != nil {
		e.hooks.OnPhase(ctx, event)
	}
	if p.Terminal() && e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, event)
	}
}

// Snapshot captures the observable engine state in event form. The
// transition is copied so a consumer cannot reach back into the engine.
func (e *Engine) Snapshot() *machine.StepEvent {
	event := &machine.StepEvent{
		Phase:  e.phase,
		State:  e.state,
		Head:   e.head,
		Symbol: e.tape.Get(e.head),
	}
	if e.transition != nil {
		t := *e.transition
		event.Transition = &t
	}
	return event
}

// State returns the machine state the engine is currently in.
func (e *Engine) State() machine.State { return e.state }

// Head returns the tape offset the head points at.
func (e *Engine) Head() int { return e.head }

// Phase returns the engine's position inside the current logical step.
func (e *Engine) Phase() machine.Phase { return e.phase }

// Symbol returns the symbol under the head.
func (e *Engine) Symbol() machine.Symbol { return e.tape.Get(e.head) }

// Read returns the symbol at an arbitrary tape offset, extending storage so
// the cell exists. Renderers use it to paint cells the head never visited.
func (e *Engine) Read(offset int) machine.Symbol { return e.tape.Get(offset) }

// LastMove returns the head displacement of the most recent move phase.
func (e *Engine) LastMove() int { return e.lastMove }

// Transition returns a copy of the transition being applied, or nil when
// the engine is between logical steps.
func (e *Engine) Transition() *machine.Transition {
	if e.transition == nil {
		return nil
	}
	t := *e.transition
	return &t
}

// TapeWindow returns the symbols in the half-open offset range [from, to).
func (e *Engine) TapeWindow(from, to int) []machine.Symbol {
	return e.tape.Window(from, to)
}

// TapeBounds returns the half-open offset range backed by tape storage.
func (e *Engine) TapeBounds() (int, int) {
	return e.tape.Bounds()
}

// TapeString renders the whole backed tape with "|" before offset zero.
func (e *Engine) TapeString() string {
	return e.tape.String()
}
