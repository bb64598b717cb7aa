package parser

import "fmt"

// ErrorKind classifies what a definition or input text got wrong.
type ErrorKind string

const (
	InvalidSymbol        ErrorKind = "invalid_symbol"        // input text holds a character outside the tape alphabet
	InvalidInitState     ErrorKind = "invalid_init_state"    // the first meaningful line is not a state name
	InvalidTransition    ErrorKind = "invalid_transition"    // a transition line does not follow the grammar
	DuplicatedTransition ErrorKind = "duplicated_transition" // two transitions share the same condition
)

// Error reports where parsing failed and why. Index is a 1-based line
// number for definition errors and a 0-based rune column for input errors.
type Error struct {
	Kind  ErrorKind
	Index int
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidSymbol:
		return fmt.Sprintf("column %d: an invalid symbol on the input tape", e.Index)
	case InvalidInitState:
		return fmt.Sprintf("line %d: the initial state is malformed", e.Index)
	case InvalidTransition:
		return fmt.Sprintf("line %d: the transition is malformed", e.Index)
	case DuplicatedTransition:
		return fmt.Sprintf("line %d: a transition using the same condition has been already defined", e.Index)
	}
	return fmt.Sprintf("parsing failed at index %d", e.Index)
}
