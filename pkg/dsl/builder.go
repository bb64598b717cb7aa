package dsl

import (
	"fmt"

	"github.com/aretw0/ribbon/pkg/machine"
)

// Builder accumulates transition rules for a machine definition.
type Builder struct {
	initial machine.State
	rules   []machine.Transition
}

// New starts a definition whose run begins in the given state.
func New(initial string) *Builder {
	return &Builder{initial: machine.State(initial)}
}

// When begins a rule that applies while the machine is in state and reads
// symbol under the head. Complete it with Then.
func (b *Builder) When(state string, symbol rune) *RuleBuilder {
	return &RuleBuilder{
		builder: b,
		cond: machine.Condition{
			State:  machine.State(state),
			Symbol: machine.Symbol(symbol),
		},
	}
}

// Rule adds a fully-formed transition. Most callers prefer When/Then; this
// is the escape hatch for machines assembled from data.
func (b *Builder) Rule(t machine.Transition) *Builder {
	b.rules = append(b.rules, t)
	return b
}

// Build compiles the accumulated rules into a Machine. Declaring two rules
// for the same (state, symbol) pair is rejected, matching the behavior of
// the text parser.
func (b *Builder) Build() (*machine.Machine, error) {
	if b.initial == "" {
		return nil, fmt.Errorf("initial state is required")
	}

	table := machine.Table{}
	for _, r := range b.rules {
		if _, exists := table[r.Condition]; exists {
			return nil, fmt.Errorf("duplicated rule for %s + %s", r.Condition.State, r.Condition.Symbol)
		}
		table[r.Condition] = r.Effect
	}

	return &machine.Machine{Initial: b.initial, Table: table}, nil
}

// RuleBuilder holds a half-built rule: the condition without its effect.
type RuleBuilder struct {
	builder *Builder
	cond    machine.Condition
}

// Then completes the rule: the machine enters next, writes the given symbol
// at the head and moves it by move.
func (r *RuleBuilder) Then(next string, write rune, move machine.Action) *Builder {
	return r.builder.Rule(machine.Transition{
		Condition: r.cond,
		Effect: machine.Effect{
			Next:  machine.State(next),
			Write: machine.Symbol(write),
			Move:  move,
		},
	})
}
