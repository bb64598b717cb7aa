package machine

import (
	"encoding/json"
	"testing"
)

func TestNewSymbol(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Symbol
		wantErr bool
	}{
		{name: "digit", in: "7", want: Symbol('7')},
		{name: "underscore", in: "_", want: Empty},
		{name: "asterisk", in: "*", want: Symbol('*')},
		{name: "multibyte rune", in: "é", want: Symbol('é')},
		{name: "empty", in: "", wantErr: true},
		{name: "two characters", in: "01", wantErr: true},
		{name: "rune plus junk", in: "é7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSymbol(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewSymbol(%q) expected error, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSymbol(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NewSymbol(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSymbolTextRoundTrip(t *testing.T) {
	payload, err := json.Marshal(Symbol('0'))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(payload) != `"0"` {
		t.Errorf("expected symbol to marshal as a character, got %s", payload)
	}

	var s Symbol
	if err := json.Unmarshal([]byte(`"_"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s != Empty {
		t.Errorf("expected Empty, got %q", s)
	}

	if err := json.Unmarshal([]byte(`"too long"`), &s); err == nil {
		t.Error("expected unmarshal of multi-character text to fail")
	}
}

func TestActionDisplacement(t *testing.T) {
	tests := []struct {
		action Action
		want   int
	}{
		{MoveNone, 0},
		{MoveLeft, -1},
		{MoveRight, 1},
	}
	for _, tt := range tests {
		if got := tt.action.Displacement(); got != tt.want {
			t.Errorf("%s.Displacement() = %d, want %d", tt.action, got, tt.want)
		}
	}
}

func TestPhaseTerminal(t *testing.T) {
	for _, p := range []Phase{PhaseIdle, PhaseFoundTransition, PhaseChangedState, PhaseMoved} {
		if p.Terminal() {
			t.Errorf("%s should not be terminal", p)
		}
	}
	for _, p := range []Phase{PhaseFinished, PhaseInterrupted} {
		if !p.Terminal() {
			t.Errorf("%s should be terminal", p)
		}
	}
}

func TestTableLookup(t *testing.T) {
	table := Table{
		{State: "A", Symbol: '0'}: {Next: "B", Write: '1', Move: MoveRight},
	}

	eff, ok := table.Lookup(Condition{State: "A", Symbol: '0'})
	if !ok {
		t.Fatal("expected a hit for (A, 0)")
	}
	if eff.Next != "B" || eff.Write != '1' || eff.Move != MoveRight {
		t.Errorf("unexpected effect: %+v", eff)
	}

	if _, ok := table.Lookup(Condition{State: "A", Symbol: '1'}); ok {
		t.Error("expected a miss for (A, 1)")
	}
}

func TestTransitionString(t *testing.T) {
	tr := Transition{
		Condition: Condition{State: "A", Symbol: '0'},
		Effect:    Effect{Next: "B", Write: '1', Move: MoveRight},
	}
	if got, want := tr.String(), "A + 0 |> B + 1 |> R"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
