package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/ribbon/pkg/machine"
)

// fakeSim is a hand-rolled inspector so layout tests control every value
// the view reads.
type fakeSim struct {
	phase    machine.Phase
	state    machine.State
	head     int
	lastMove int
	tr       *machine.Transition
	cells    map[int]machine.Symbol
}

func (f *fakeSim) Phase() machine.Phase   { return f.phase }
func (f *fakeSim) State() machine.State   { return f.state }
func (f *fakeSim) Head() int              { return f.head }
func (f *fakeSim) Symbol() machine.Symbol { return f.Read(f.head) }
func (f *fakeSim) LastMove() int          { return f.lastMove }

func (f *fakeSim) Transition() *machine.Transition { return f.tr }

func (f *fakeSim) Read(offset int) machine.Symbol {
	if s, ok := f.cells[offset]; ok {
		return s
	}
	return machine.Empty
}

func (f *fakeSim) TapeWindow(from, to int) []machine.Symbol {
	var out []machine.Symbol
	for i := from; i < to; i++ {
		out = append(out, f.Read(i))
	}
	return out
}

func (f *fakeSim) TapeBounds() (int, int) { return 0, len(f.cells) }
func (f *fakeSim) TapeString() string     { return "" }

func (f *fakeSim) Snapshot() *machine.StepEvent {
	return &machine.StepEvent{Phase: f.phase, State: f.state, Head: f.head, Symbol: f.Symbol()}
}

func asciiView(sim *fakeSim, width int) (*View, *bytes.Buffer) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	v := NewView(sim,
		WithOutput(out),
		WithWidth(func() int { return width }),
		WithInterval(func() time.Duration { return 300 * time.Millisecond }),
	)
	return v, &buf
}

func TestNSymbols(t *testing.T) {
	v, _ := asciiView(&fakeSim{}, 80)

	tests := []struct {
		width int
		want  int
	}{
		{80, 36}, // (80 - 8 + 1) / 2
		{20, 6},
		{8, 0},
		{3, 0},
	}
	for _, tt := range tests {
		if got := v.nSymbols(tt.width); got != tt.want {
			t.Errorf("nSymbols(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestTapeLines(t *testing.T) {
	sim := &fakeSim{
		state: "right",
		head:  0,
		cells: map[int]machine.Symbol{0: '1', 1: '0', 2: '1'},
	}
	v, _ := asciiView(sim, 20) // 6 visible cells, head lands at index 3

	ceiling, tape := v.tapeLines(20)

	if want := "...| | | |1|0|1|..."; tape.text != want {
		t.Errorf("tape = %q, want %q", tape.text, want)
	}
	if tape.width != len(tape.text) {
		t.Errorf("tape width = %d, want %d", tape.width, len(tape.text))
	}

	// "right" splits into "r" + "igh" + "t" floating over the head cell.
	if want := "       |right|     "; ceiling.text != want {
		t.Errorf("ceiling = %q, want %q", ceiling.text, want)
	}
	if ceiling.width != len(ceiling.text) {
		t.Errorf("ceiling width = %d, want %d", ceiling.width, len(ceiling.text))
	}
}

func TestTapeLines_ShortState(t *testing.T) {
	sim := &fakeSim{
		state: "go",
		head:  0,
		cells: map[int]machine.Symbol{0: '*'},
	}
	v, _ := asciiView(sim, 20)

	ceiling, _ := v.tapeLines(20)
	// A short state has no halves: the separators hug the center text.
	if !strings.Contains(ceiling.text, "|go|") {
		t.Errorf("ceiling = %q, want it to contain %q", ceiling.text, "|go|")
	}
}

func TestHeadX_FollowsMovesAndClamps(t *testing.T) {
	sim := &fakeSim{state: "s", cells: map[int]machine.Symbol{}}
	v, _ := asciiView(sim, 80)
	n := v.nSymbols(80) // 36

	// First layout centers the head.
	if got := v.updateHeadX(n); got != n/2 {
		t.Fatalf("initial headX = %d, want %d", got, n/2)
	}

	// Idle phases leave the coordinate alone.
	sim.phase = machine.PhaseIdle
	sim.lastMove = 1
	if got := v.updateHeadX(n); got != n/2 {
		t.Errorf("headX after idle = %d, want %d", got, n/2)
	}

	// A move phase shifts it.
	sim.phase = machine.PhaseMoved
	if got := v.updateHeadX(n); got != n/2+1 {
		t.Errorf("headX after move = %d, want %d", got, n/2+1)
	}

	// At the right band edge the coordinate freezes.
	v.headX = 9 * n / 10
	if got := v.updateHeadX(n); got != 9*n/10 {
		t.Errorf("headX at right edge = %d, want %d", got, 9*n/10)
	}

	// Same on the left going left.
	v.headX = n / 10
	sim.lastMove = -1
	if got := v.updateHeadX(n); got != n/10 {
		t.Errorf("headX at left edge = %d, want %d", got, n/10)
	}
}

func TestTransitionLine(t *testing.T) {
	tr := &machine.Transition{
		Condition: machine.Condition{State: "A", Symbol: '0'},
		Effect:    machine.Effect{Next: "B", Write: '1', Move: machine.MoveRight},
	}

	tests := []struct {
		name  string
		phase machine.Phase
		tr    *machine.Transition
		want  string
	}{
		{"idle", machine.PhaseIdle, nil, "... looking for transition"},
		{"found", machine.PhaseFoundTransition, tr, "A + 0 |> B + 1 |> R"},
		{"changed", machine.PhaseChangedState, tr, "A + 0 |> B + 1 |> R"},
		{"moved", machine.PhaseMoved, tr, "A + 0 |> B + 1 |> R"},
		{"finished", machine.PhaseFinished, nil, "FINISHED"},
		{"interrupted", machine.PhaseInterrupted, nil, "INTERRUPTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := asciiView(&fakeSim{phase: tt.phase, tr: tt.tr}, 80)
			got := v.transitionLine()
			if got.text != tt.want {
				t.Errorf("transitionLine() = %q, want %q", got.text, tt.want)
			}
			if got.width != len(tt.want) {
				t.Errorf("width = %d, want %d", got.width, len(tt.want))
			}
		})
	}
}

func TestFooterLine(t *testing.T) {
	v, _ := asciiView(&fakeSim{phase: machine.PhaseIdle}, 80)
	got := v.footerLine()
	want := "[a] accelerate | [s] slow down | [q] quit | interval: 0.3s"
	if got.text != want {
		t.Errorf("footer = %q, want %q", got.text, want)
	}
	if got.width != len(want) {
		t.Errorf("footer width = %d, want %d", got.width, len(want))
	}

	v, _ = asciiView(&fakeSim{phase: machine.PhaseFinished}, 80)
	if got := v.footerLine(); got.text != "Press Any Key to Exit" {
		t.Errorf("terminal footer = %q", got.text)
	}
}

func TestRefresh_WritesAllRows(t *testing.T) {
	sim := &fakeSim{
		phase: machine.PhaseFinished,
		state: "done",
		cells: map[int]machine.Symbol{0: '1'},
	}
	v, buf := asciiView(sim, 40)

	v.Refresh()
	out := buf.String()

	for _, want := range []string{
		"Ribbon Turing Machine Simulator",
		"FINISHED",
		"Press Any Key to Exit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("refresh output missing %q", want)
		}
	}
}
