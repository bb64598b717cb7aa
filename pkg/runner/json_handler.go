package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/ports"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines
// output: one step event per line, then one closing summary line carrying
// the final tape. Hosts distinguish the summary by its "tape" key.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder
	Sim     ports.Inspector
}

// NewJSONHandler creates a handler emitting NDJSON to w. The inspector is
// used for the closing summary; it may be nil.
func NewJSONHandler(w io.Writer, sim ports.Inspector) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
		Sim:     sim,
	}
}

func (h *JSONHandler) Output(_ context.Context, event *machine.StepEvent) error {
	return h.Encoder.Encode(event)
}

func (h *JSONHandler) Halt(_ context.Context, event *machine.StepEvent) error {
	summary := struct {
		Phase machine.Phase `json:"phase"`
		State machine.State `json:"state"`
		Head  int           `json:"head"`
		Tape  string        `json:"tape"`
	}{
		Phase: event.Phase,
		State: event.State,
		Head:  event.Head,
	}
	if h.Sim != nil {
		summary.Tape = h.Sim.TapeString()
	}
	return h.Encoder.Encode(summary)
}
