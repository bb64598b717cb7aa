// Package parser turns definition text and tape input into machine values.
//
// A definition is line oriented. Blank lines and lines whose first
// non-space character is '#' carry no meaning; error positions still count
// them, so a reported line number matches what an editor shows. The first
// meaningful line names the initial state. Every later one declares a
// transition:
//
//	<state> + <symbol> |> <state> + <symbol> |> <action>
//
// States are \w+ words, symbols come from the alphabet [_*0-9] and the
// action is one of L, R or N. Whitespace around "+" and "|>" is free.
package parser

import (
	"regexp"
	"strings"

	"github.com/aretw0/ribbon/pkg/machine"
)

const (
	symbolClass = `[_*0-9]`
	stateClass  = `\w+`
)

var (
	initStateRe   = regexp.MustCompile(`^(` + stateClass + `)\s*$`)
	stateSymbolRe = regexp.MustCompile(`^(` + stateClass + `)\s*\+\s*(` + symbolClass + `)`)
	actionRe      = regexp.MustCompile(`^(L|R|N)`)
	separatorRe   = regexp.MustCompile(`\s*\|>\s*`)
	inputSymbolRe = regexp.MustCompile(`^` + symbolClass + `$`)
)

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// parseInitState accepts a lone state name, tolerating trailing whitespace
// but nothing else on the line.
func parseInitState(line string) (machine.State, bool) {
	m := initStateRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return machine.State(m[1]), true
}

// parseStateSymbol reads a "<state> + <symbol>" pair anchored at the start
// of text. Anything after the symbol is ignored.
func parseStateSymbol(text string) (machine.State, machine.Symbol, bool) {
	m := stateSymbolRe.FindStringSubmatch(text)
	if m == nil {
		return "", 0, false
	}
	return machine.State(m[1]), machine.Symbol(m[2][0]), true
}

func parseAction(text string) (machine.Action, bool) {
	m := actionRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return machine.Action(m[1]), true
}

func parseTransition(line string) (machine.Condition, machine.Effect, bool) {
	parts := separatorRe.Split(line, -1)
	if len(parts) != 3 {
		return machine.Condition{}, machine.Effect{}, false
	}

	condState, condSymbol, ok := parseStateSymbol(parts[0])
	if !ok {
		return machine.Condition{}, machine.Effect{}, false
	}
	nextState, nextSymbol, ok := parseStateSymbol(parts[1])
	if !ok {
		return machine.Condition{}, machine.Effect{}, false
	}
	action, ok := parseAction(parts[2])
	if !ok {
		return machine.Condition{}, machine.Effect{}, false
	}

	cond := machine.Condition{State: condState, Symbol: condSymbol}
	effect := machine.Effect{Next: nextState, Write: nextSymbol, Move: action}
	return cond, effect, true
}

// ParseMachine reads a full definition, one element per line. On failure it
// returns a *Error whose index is the offending 1-based line number; an
// entirely meaningless definition is reported as a bad initial state on
// line 1.
func ParseMachine(lines []string) (*machine.Machine, error) {
	type numbered struct {
		n    int
		text string
	}

	var meaningful []numbered
	for i, line := range lines {
		if isBlank(line) || isComment(line) {
			continue
		}
		meaningful = append(meaningful, numbered{n: i + 1, text: line})
	}

	if len(meaningful) == 0 {
		return nil, &Error{Kind: InvalidInitState, Index: 1}
	}

	initial, ok := parseInitState(meaningful[0].text)
	if !ok {
		return nil, &Error{Kind: InvalidInitState, Index: meaningful[0].n}
	}

	table := machine.Table{}
	for _, line := range meaningful[1:] {
		cond, effect, ok := parseTransition(line.text)
		if !ok {
			return nil, &Error{Kind: InvalidTransition, Index: line.n}
		}
		if _, exists := table[cond]; exists {
			return nil, &Error{Kind: DuplicatedTransition, Index: line.n}
		}
		table[cond] = effect
	}

	return &machine.Machine{Initial: initial, Table: table}, nil
}

// ParseInput reads the text that seeds the tape, one symbol per rune. The
// index of a rejected character counts runes from zero.
func ParseInput(text string) ([]machine.Symbol, error) {
	symbols := make([]machine.Symbol, 0, len(text))
	for i, r := range []rune(text) {
		if !inputSymbolRe.MatchString(string(r)) {
			return nil, &Error{Kind: InvalidSymbol, Index: i}
		}
		symbols = append(symbols, machine.Symbol(r))
	}
	return symbols, nil
}
