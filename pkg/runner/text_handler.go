package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/ports"
)

// TextHandler implements the standard text-based interface. By default it
// stays quiet during the run and prints a summary when the run halts;
// Verbose mode logs every phase as it happens.
type TextHandler struct {
	Writer  io.Writer
	Sim     ports.Inspector
	Verbose bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerVerbose enables the per-phase trace.
func WithTextHandlerVerbose(verbose bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Verbose = verbose
	}
}

// NewTextHandler creates a handler writing to w. The inspector is used for
// the final tape rendering; it may be nil.
func NewTextHandler(w io.Writer, sim ports.Inspector, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		Sim:    sim,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Output(_ context.Context, event *machine.StepEvent) error {
	if !h.Verbose {
		return nil
	}

	line := fmt.Sprintf("%-16s state=%s head=%d symbol=%s", event.Phase, event.State, event.Head, event.Symbol)
	if event.Transition != nil {
		line += "  " + event.Transition.String()
	}
	_, err := fmt.Fprintln(h.Writer, line)
	return err
}

func (h *TextHandler) Halt(_ context.Context, event *machine.StepEvent) error {
	if _, err := fmt.Fprintf(h.Writer, "%s: state=%s head=%d\n",
		strings.ToUpper(string(event.Phase)), event.State, event.Head); err != nil {
		return err
	}
	if h.Sim != nil {
		if _, err := fmt.Fprintf(h.Writer, "tape: %s\n", h.Sim.TapeString()); err != nil {
			return err
		}
	}
	return nil
}
