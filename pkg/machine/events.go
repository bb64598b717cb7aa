package machine

import "context"

// StepEvent is the engine's observable snapshot right after one advance.
type StepEvent struct {
	Phase  Phase  `json:"phase"`
	State  State  `json:"state"`
	Head   int    `json:"head"`
	Symbol Symbol `json:"symbol"`

	// Transition is the transition currently being applied. It is set for
	// the found_transition, changed_state and moved phases and nil otherwise.
	Transition *Transition `json:"transition,omitempty"`
}

// Hooks defines callbacks for engine observability. Nil members are skipped.
type Hooks struct {
	// OnPhase fires after every advance that changed the engine.
	OnPhase func(context.Context, *StepEvent)
	// OnHalt fires once, when the engine enters a terminal phase.
	OnHalt func(context.Context, *StepEvent)
}

// Merge chains two hook sets. Callbacks of h fire before those of other,
// so a metrics collector can observe events ahead of a debug tracer.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPhase: chain(h.OnPhase, other.OnPhase),
		OnHalt:  chain(h.OnHalt, other.OnHalt),
	}
}

func chain(first, second func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return func(ctx context.Context, event *StepEvent) {
		first(ctx, event)
		second(ctx, event)
	}
}
