package machine

// Phase tells where the engine is inside one machine transition. A full
// transition is decomposed into four observable micro-steps (lookup, commit,
// move, settle) so a host can render each as a distinct moment.
type Phase string

const (
	// PhaseIdle sits between transitions; the next advance performs a lookup.
	PhaseIdle Phase = "idle"
	// PhaseFoundTransition means a matching transition was found and recorded.
	PhaseFoundTransition Phase = "found_transition"
	// PhaseChangedState means the machine state changed and the new symbol
	// was written under the head.
	PhaseChangedState Phase = "changed_state"
	// PhaseMoved means the head finished its movement.
	PhaseMoved Phase = "moved"
	// PhaseFinished means no transition matched: the machine halted normally.
	PhaseFinished Phase = "finished"
	// PhaseInterrupted means the host cancelled the run.
	PhaseInterrupted Phase = "interrupted"
)

// Terminal reports whether the phase admits no further work. Advancing a
// terminal engine is a no-op.
func (p Phase) Terminal() bool {
	return p == PhaseFinished || p == PhaseInterrupted
}
