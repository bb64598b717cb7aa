// Package validator inspects a parsed machine for definitions that are
// legal but almost certainly unintended, such as transition rules that no
// run can ever fire.
package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/ribbon/pkg/machine"
)

// WarningKind classifies what Check found.
type WarningKind string

const (
	// Unreachable flags a state that declares transitions but cannot be
	// reached from the initial state.
	Unreachable WarningKind = "unreachable"
	// HaltsImmediately flags an initial state with no transitions at all.
	HaltsImmediately WarningKind = "halts_immediately"
)

// Warning points at one suspicious state. Warnings never make a definition
// invalid; they exist so "check" can tell the author about dead rules.
type Warning struct {
	Kind  WarningKind
	State machine.State
}

func (w Warning) String() string {
	switch w.Kind {
	case Unreachable:
		return fmt.Sprintf("state %q declares transitions but can never be reached", w.State)
	case HaltsImmediately:
		return fmt.Sprintf("the initial state %q has no transitions, so the machine halts immediately", w.State)
	}
	return fmt.Sprintf("state %q", w.State)
}

// Check crawls the transition table from the initial state, following every
// effect, and reports the states left over. The result is sorted by state
// name so output is stable.
func Check(m *machine.Machine) []Warning {
	// Group conditions by source state once; the crawl below walks states,
	// not individual rules.
	next := make(map[machine.State][]machine.State)
	for cond, effect := range m.Table {
		next[cond.State] = append(next[cond.State], effect.Next)
	}

	reachable := map[machine.State]bool{m.Initial: true}
	queue := []machine.State{m.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, target := range next[current] {
			if !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
	}

	var warnings []Warning
	for state := range next {
		if !reachable[state] {
			warnings = append(warnings, Warning{Kind: Unreachable, State: state})
		}
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].State < warnings[j].State })

	if len(next[m.Initial]) == 0 {
		warnings = append([]Warning{{Kind: HaltsImmediately, State: m.Initial}}, warnings...)
	}

	return warnings
}
