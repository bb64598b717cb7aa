package machine

import "fmt"

// Condition is the (state, symbol) pair that must hold for a transition to
// apply: the machine is in State and reads Symbol under the head.
type Condition struct {
	State  State  `json:"state"`
	Symbol Symbol `json:"symbol"`
}

// Effect is the outcome of applying a transition: the state the machine
// enters, the symbol written at the head, and how the head moves afterwards.
type Effect struct {
	Next  State  `json:"next"`
	Write Symbol `json:"write"`
	Move  Action `json:"move"`
}

// Transition pairs a Condition with its Effect. The engine records the one
// currently being applied so hosts can render it between micro-steps.
type Transition struct {
	Condition Condition `json:"condition"`
	Effect    Effect    `json:"effect"`
}

// String renders the transition in the definition grammar, e.g.
// "A + 0 |> B + 1 |> R".
func (t Transition) String() string {
	return fmt.Sprintf("%s + %s |> %s + %s |> %s",
		t.Condition.State, t.Condition.Symbol,
		t.Effect.Next, t.Effect.Write, t.Effect.Move)
}

// Table maps each Condition to its Effect. Keys are unique; the parser
// rejects a definition that binds the same condition twice. A Table is built
// once at parse time and is read-only during execution.
type Table map[Condition]Effect

// Lookup returns the effect bound to cond and whether one is defined.
// A missing condition is not an error: it is how a machine halts.
func (t Table) Lookup(cond Condition) (Effect, bool) {
	eff, ok := t[cond]
	return eff, ok
}
