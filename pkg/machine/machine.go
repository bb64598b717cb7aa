package machine

// Machine is a complete Turing machine definition: the state execution
// starts in and the table describing every reaction the machine has.
// It is immutable after construction; simulation state (tape, head, phase)
// lives in the engine, never here.
type Machine struct {
	Initial State `json:"initial"`
	Table   Table `json:"-"`
}
