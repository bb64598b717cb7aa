package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ribbon/internal/presentation/graph"
	"github.com/aretw0/ribbon/pkg/dsl"
	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/parser"
)

func incrementMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m, err := parser.ParseMachine([]string{
		"right",
		"right + 1 |> right + 1 |> R",
		"right + 0 |> right + 0 |> R",
		"right + _ |> carry + _ |> L",
		"carry + 1 |> carry + 0 |> L",
		"carry + 0 |> done + 1 |> N",
		"carry + _ |> done + 1 |> N",
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMermaid(t *testing.T) {
	tests := []struct {
		name     string
		machine  func(t *testing.T) *machine.Machine
		contains []string
	}{
		{
			name:    "Initial Marker",
			machine: incrementMachine,
			contains: []string{
				"stateDiagram-v2",
				"[*] --> right",
			},
		},
		{
			name:    "Edge Labels",
			machine: incrementMachine,
			contains: []string{
				"right --> carry: _ / _, L",
				"carry --> done: 0 / 1, N",
				"right --> right: 0 / 0, R",
			},
		},
		{
			name:    "Halting State Marker",
			machine: incrementMachine,
			contains: []string{
				"done --> [*]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.Mermaid(tt.machine(t))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Mermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestMermaid_StableOrder(t *testing.T) {
	m := incrementMachine(t)
	first := graph.Mermaid(m)
	for i := 0; i < 10; i++ {
		if got := graph.Mermaid(m); got != first {
			t.Fatal("Mermaid() output is not deterministic")
		}
	}
}

func TestMermaid_SanitizesDSLStates(t *testing.T) {
	m, err := dsl.New("start here").
		When("start here", '_').Then("end", '_', machine.MoveNone).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	got := graph.Mermaid(m)
	if !strings.Contains(got, "start_here --> end") {
		t.Errorf("expected sanitized id 'start_here' in output:\n%s", got)
	}
}

func TestMarkdownSummary(t *testing.T) {
	got := graph.MarkdownSummary(incrementMachine(t))

	contains := []string{
		"# Machine",
		"- **Initial state:** `right`",
		"- **States:** 3",
		"- **Rules:** 6",
		"- **Halting states:** `done`",
		"| State | Read | Next | Write | Move |",
		"| `carry` | `1` | `carry` | `0` | `L` |",
	}
	for _, want := range contains {
		if !strings.Contains(got, want) {
			t.Errorf("MarkdownSummary() missing substring %q in:\n%s", want, got)
		}
	}
}
