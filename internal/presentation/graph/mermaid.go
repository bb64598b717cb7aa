// Package graph renders machine definitions for human inspection: a Mermaid
// state diagram for documentation and a markdown summary for the terminal.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/ribbon/pkg/machine"
)

// Mermaid produces a stateDiagram-v2 document from the transition table.
// Transitions are emitted in a stable order so the output diffs cleanly.
// Edge labels read "<read> / <write>, <move>". States that never appear as
// a rule condition are halting states and get an edge to the final marker.
func Mermaid(m *machine.Machine) string {
	rules := sortedRules(m)

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeID(string(m.Initial))))

	for _, r := range rules {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s / %s, %s\n",
			sanitizeID(string(r.Condition.State)),
			sanitizeID(string(r.Effect.Next)),
			r.Condition.Symbol, r.Effect.Write, r.Effect.Move,
		))
	}

	for _, s := range haltingStates(m) {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeID(string(s))))
	}

	return sb.String()
}

// MarkdownSummary produces a markdown overview of the definition: headline
// counts and the full transition table, ordered like Mermaid output.
func MarkdownSummary(m *machine.Machine) string {
	rules := sortedRules(m)

	var sb strings.Builder
	sb.WriteString("# Machine\n\n")
	sb.WriteString(fmt.Sprintf("- **Initial state:** `%s`\n", m.Initial))
	sb.WriteString(fmt.Sprintf("- **States:** %d\n", len(collectStates(m))))
	sb.WriteString(fmt.Sprintf("- **Rules:** %d\n", len(rules)))

	if halting := haltingStates(m); len(halting) > 0 {
		names := make([]string, 0, len(halting))
		for _, s := range halting {
			names = append(names, fmt.Sprintf("`%s`", s))
		}
		sb.WriteString(fmt.Sprintf("- **Halting states:** %s\n", strings.Join(names, ", ")))
	}

	sb.WriteString("\n## Transition table\n\n")
	sb.WriteString("| State | Read | Next | Write | Move |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range rules {
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` | `%s` | `%s` | `%s` |\n",
			r.Condition.State, r.Condition.Symbol,
			r.Effect.Next, r.Effect.Write, r.Effect.Move,
		))
	}

	return sb.String()
}

func sortedRules(m *machine.Machine) []machine.Transition {
	rules := make([]machine.Transition, 0, len(m.Table))
	for cond, effect := range m.Table {
		rules = append(rules, machine.Transition{Condition: cond, Effect: effect})
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Condition.State != rules[j].Condition.State {
			return rules[i].Condition.State < rules[j].Condition.State
		}
		return rules[i].Condition.Symbol < rules[j].Condition.Symbol
	})
	return rules
}

// collectStates gathers every state the definition mentions, in sorted order.
func collectStates(m *machine.Machine) []machine.State {
	seen := map[machine.State]bool{m.Initial: true}
	for cond, effect := range m.Table {
		seen[cond.State] = true
		seen[effect.Next] = true
	}
	states := make([]machine.State, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// haltingStates are states with no outgoing rule: once entered, the next
// lookup misses and the run finishes.
func haltingStates(m *machine.Machine) []machine.State {
	outgoing := map[machine.State]bool{}
	for cond := range m.Table {
		outgoing[cond.State] = true
	}

	var halting []machine.State
	for _, s := range collectStates(m) {
		if !outgoing[s] {
			halting = append(halting, s)
		}
	}
	return halting
}

// sanitizeID keeps Mermaid identifiers to word characters. Parsed states are
// \w+ already; this guards definitions assembled through the DSL.
func sanitizeID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
