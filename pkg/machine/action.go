package machine

// Action is the head movement applied after a transition commits its state
// and symbol. The values match the single-letter codes of the definition
// grammar.
type Action string

const (
	// MoveNone keeps the head where it is.
	MoveNone Action = "N"
	// MoveLeft shifts the head one cell to the left.
	MoveLeft Action = "L"
	// MoveRight shifts the head one cell to the right.
	MoveRight Action = "R"
)

// Displacement is the signed offset the action adds to the head position.
func (a Action) Displacement() int {
	switch a {
	case MoveLeft:
		return -1
	case MoveRight:
		return 1
	case MoveNone:
		return 0
	}
	return 0
}

func (a Action) String() string {
	return string(a)
}
