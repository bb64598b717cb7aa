package ribbon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/ribbon/internal/sim"
	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/parser"
	"github.com/aretw0/ribbon/pkg/ports"
)

// Simulator is the high-level entry point for the ribbon library.
// It wraps the internal engine and provides a simplified API for hosts.
type Simulator struct {
	engine *sim.Engine

	machine *machine.Machine
	hooks   machine.Hooks
	logger  *slog.Logger
}

var _ ports.Simulation = (*Simulator)(nil)

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithHooks registers observability callbacks. OnPhase fires after every
// advance, OnHalt once when the run turns terminal.
func WithHooks(hooks machine.Hooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine. Phase changes
// are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// New builds a Simulator running machine m over the given input text. The
// input seeds the tape starting at offset zero, one symbol per rune; an
// invalid character is reported as a *parser.Error with its rune index.
func New(m *machine.Machine, input string, opts ...Option) (*Simulator, error) {
	if m == nil {
		return nil, fmt.Errorf("machine is required")
	}

	s := &Simulator{machine: m}
	for _, opt := range opts {
		opt(s)
	}

	symbols, err := parser.ParseInput(input)
	if err != nil {
		return nil, err
	}

	engineOpts := []sim.EngineOption{sim.WithHooks(s.hooks)}
	if s.logger != nil {
		engineOpts = append(engineOpts, sim.WithLogger(s.logger))
	}
	s.engine = sim.NewEngine(m, symbols, engineOpts...)

	return s, nil
}

// LoadMachine reads a definition file and parses it into a Machine. Parse
// failures come back as *parser.Error carrying the 1-based line number.
func LoadMachine(path string) (*machine.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine definition: %w", err)
	}
	return ParseMachine(strings.Split(string(data), "\n"))
}

// ParseMachine parses a definition supplied as lines of text.
func ParseMachine(lines []string) (*machine.Machine, error) {
	return parser.ParseMachine(lines)
}

// Machine returns the definition this simulator runs.
func (s *Simulator) Machine() *machine.Machine { return s.machine }

// Advance moves the simulation through one phase. It reports false once the
// run is already terminal.
func (s *Simulator) Advance(ctx context.Context) bool { return s.engine.Advance(ctx) }

// Interrupt aborts the run. Terminal runs are left untouched.
func (s *Simulator) Interrupt(ctx context.Context) { s.engine.Interrupt(ctx) }

// Reset rewinds the simulation to the moment before the first advance.
func (s *Simulator) Reset() { s.engine.Reset() }

// Run advances until the simulation halts or ctx is done. Cancelling ctx
// interrupts the run. The final phase is returned.
func (s *Simulator) Run(ctx context.Context) machine.Phase {
	for !s.engine.Phase().Terminal() {
		if ctx.Err() != nil {
			s.engine.Interrupt(ctx)
			break
		}
		s.engine.Advance(ctx)
	}
	return s.engine.Phase()
}

// Phase reports where the engine is inside the current logical step.
func (s *Simulator) Phase() machine.Phase { return s.engine.Phase() }

// State returns the machine state the simulation currently occupies.
func (s *Simulator) State() machine.State { return s.engine.State() }

// Head returns the tape offset under the head.
func (s *Simulator) Head() int { return s.engine.Head() }

// Symbol returns the symbol under the head.
func (s *Simulator) Symbol() machine.Symbol { return s.engine.Symbol() }

// Transition returns a copy of the in-flight transition, or nil between steps.
func (s *Simulator) Transition() *machine.Transition { return s.engine.Transition() }

// LastMove returns the head displacement of the most recent move phase.
func (s *Simulator) LastMove() int { return s.engine.LastMove() }

// Read returns the symbol at an arbitrary tape offset.
func (s *Simulator) Read(offset int) machine.Symbol { return s.engine.Read(offset) }

// TapeWindow returns the symbols in the half-open offset range [from, to).
func (s *Simulator) TapeWindow(from, to int) []machine.Symbol { return s.engine.TapeWindow(from, to) }

// TapeBounds returns the half-open offset range backed by storage.
func (s *Simulator) TapeBounds() (lo, hi int) { return s.engine.TapeBounds() }

// TapeString renders the backed tape with a "|" marker before offset zero.
func (s *Simulator) TapeString() string { return s.engine.TapeString() }

// Snapshot captures the observable state as a step event.
func (s *Simulator) Snapshot() *machine.StepEvent { return s.engine.Snapshot() }
