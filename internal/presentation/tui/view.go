// Package tui renders a running simulation as a fullscreen terminal
// animation: the tape as a scrolling strip of cells, the machine state
// floating over the head, the in-flight transition with its active part
// highlighted, and a footer with the pacing controls.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/ports"
)

const (
	tapeEllipsis  = "..."
	tapeSeparator = "|"

	rowTitle      = 1
	rowCeiling    = 3
	rowTape       = 4
	rowTransition = 5
	rowFooter     = 7
)

// line pairs rendered text with its printable width, so centering does not
// have to measure around escape sequences.
type line struct {
	text  string
	width int
}

// View draws the simulation. It only reads through ports.Inspector: all
// pacing and stepping stays with the runner that owns the engine.
//
// The head keeps a screen coordinate of its own so the tape scrolls under
// it instead of the head jumping around; the coordinate follows the head
// only in the moved phase and stays clamped to the middle of the screen.
type View struct {
	out *termenv.Output
	sim ports.Inspector

	width    func() int
	interval func() time.Duration

	headX int
}

// ViewOption configures a View at construction time.
type ViewOption func(*View)

// WithOutput redirects rendering, primarily for tests. The output's color
// profile decides how styles are encoded.
func WithOutput(out *termenv.Output) ViewOption {
	return func(v *View) {
		v.out = out
	}
}

// WithWidth overrides terminal width detection.
func WithWidth(width func() int) ViewOption {
	return func(v *View) {
		v.width = width
	}
}

// WithInterval supplies the pacing readout shown in the footer.
func WithInterval(interval func() time.Duration) ViewOption {
	return func(v *View) {
		v.interval = interval
	}
}

// NewView builds a view over the given simulation.
func NewView(sim ports.Inspector, opts ...ViewOption) *View {
	v := &View{
		sim:   sim,
		headX: -1,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.out == nil {
		v.out = termenv.NewOutput(os.Stdout)
	}
	if v.width == nil {
		v.width = terminalWidth
	}
	if v.interval == nil {
		v.interval = func() time.Duration { return 0 }
	}
	return v
}

// Start switches the terminal to the alternate screen and hides the cursor.
// Always pair it with Stop, or the terminal is left unusable.
func (v *View) Start() {
	v.headX = -1
	v.out.AltScreen()
	v.out.ClearScreen()
	v.out.HideCursor()
}

// Stop restores the terminal.
func (v *View) Stop() {
	v.out.ShowCursor()
	v.out.ExitAltScreen()
}

// Output implements the runner's handler contract: every step event
// triggers a full redraw. The view reads fresh state from its inspector,
// so the event itself only drives the cadence.
func (v *View) Output(_ context.Context, _ *machine.StepEvent) error {
	v.Refresh()
	return nil
}

// Halt redraws one final time so the banner and the exit hint are visible.
func (v *View) Halt(_ context.Context, _ *machine.StepEvent) error {
	v.Refresh()
	return nil
}

// Refresh redraws the whole view. Only the lines in use are rewritten, so
// the screen does not flicker at fast intervals.
func (v *View) Refresh() {
	width := v.width()
	ceiling, tape := v.tapeLines(width)

	v.writeCentered(rowTitle, v.titleLine(), width)
	v.writeAt(rowCeiling, ceiling.text)
	v.writeAt(rowTape, tape.text)
	v.writeCentered(rowTransition, v.transitionLine(), width)
	v.writeCentered(rowFooter, v.footerLine(), width)
}

func (v *View) writeAt(row int, text string) {
	v.out.MoveCursor(row, 1)
	v.out.ClearLine()
	v.out.WriteString(text)
}

func (v *View) writeCentered(row int, l line, width int) {
	pad := (width - l.width) / 2
	if pad < 0 {
		pad = 0
	}
	v.writeAt(row, strings.Repeat(" ", pad)+l.text)
}

func (v *View) titleLine() line {
	const title = "Ribbon Turing Machine Simulator"
	return line{text: v.title(title), width: len(title)}
}

// tapeLines renders the ceiling (machine state floating over the head) and
// the tape strip below it.
func (v *View) tapeLines(width int) (line, line) {
	n := v.nSymbols(width)
	if n <= 0 {
		return line{}, line{}
	}

	headX := v.updateHeadX(n)
	cells := v.visibleCells(headX, n)

	before := strings.Join(append([]string{tapeEllipsis}, cells[:headX]...), tapeSeparator)
	head := tapeSeparator + cells[headX] + tapeSeparator
	after := strings.Join(append(cells[headX+1:], tapeEllipsis), tapeSeparator)

	tape := line{
		text:  v.normalUnderlined(before) + v.selectedUnderlined(head) + v.normalUnderlined(after),
		width: len(before) + len(head) + len(after),
	}

	return v.ceilingLine(before, head, after), tape
}

// ceilingLine centers the state name over the head cell. The state string is
// cut into a left half, a three-character center and a right half; the
// halves stretch over neighbour cells while the center sits right above the
// head, with the underline broken under the visible text.
func (v *View) ceilingLine(before, head, after string) line {
	state := string(v.sim.State())

	leftEnd := len(state)/2 - 1
	if leftEnd < 0 {
		leftEnd = 0
	}
	centerEnd := leftEnd + 3
	if centerEnd > len(state) {
		centerEnd = len(state)
	}
	leftHalf := state[:leftEnd]
	center := state[leftEnd:centerEnd]
	rightHalf := state[centerEnd:]

	beforeState := spaces(len(before) - len(leftHalf) - len(center)/2)

	beforeHead := ""
	if leftHalf != "" {
		beforeHead = tapeSeparator + leftHalf
	}

	aboveHead := center
	if leftHalf == "" {
		aboveHead = tapeSeparator + aboveHead
	}
	if rightHalf == "" {
		aboveHead += tapeSeparator
	}

	afterHead := ""
	if rightHalf != "" {
		afterHead = rightHalf + tapeSeparator
	}

	afterState := spaces(len(after) - len(rightHalf) - len(center)/2)

	return line{
		text: v.normalUnderlined(beforeState) +
			v.selectedUnderlined(beforeHead) +
			v.selected(aboveHead) +
			v.selectedUnderlined(afterHead) +
			v.normalUnderlined(afterState),
		width: len(beforeState) + len(beforeHead) + len(aboveHead) + len(afterHead) + len(afterState),
	}
}

// nSymbols tells how many cells fit on screen, leaving room for the two
// ellipses and the separators between cells.
func (v *View) nSymbols(width int) int {
	available := width - (len(tapeEllipsis)*2 + 2)
	n := (available + len(tapeSeparator)) / (len(tapeSeparator) + 1)
	if n < 0 {
		return 0
	}
	return n
}

// headMove decides how the head's screen coordinate changes this refresh.
// It follows the tape move only right after a move phase, and freezes when
// the head would leave the middle 10%-90% band of the screen; from there on
// the tape scrolls underneath instead.
func (v *View) headMove(n int) int {
	if v.sim.Phase() != machine.PhaseMoved {
		return 0
	}
	last := v.sim.LastMove()
	if v.headX <= n/10 && last < 0 {
		return 0
	}
	if v.headX >= 9*n/10 && last > 0 {
		return 0
	}
	return last
}

func (v *View) updateHeadX(n int) int {
	if v.headX < 0 {
		v.headX = n / 2
	} else {
		v.headX += v.headMove(n)
	}
	// A shrunk terminal may leave the coordinate past the strip.
	if v.headX > n-1 {
		v.headX = n - 1
	}
	if v.headX < 0 {
		v.headX = 0
	}
	return v.headX
}

// visibleCells renders the n cells around the head so that the head lands
// at screen index headX. Empty cells render as spaces.
func (v *View) visibleCells(headX, n int) []string {
	start := v.sim.Head() - headX

	cells := make([]string, 0, n)
	for i := start; i < start+n; i++ {
		s := v.sim.Read(i)
		if s == machine.Empty {
			cells = append(cells, " ")
		} else {
			cells = append(cells, s.String())
		}
	}
	return cells
}

// transitionLine renders the in-flight transition, highlighting the part
// the last phase consumed: its condition, its effect or its head action.
func (v *View) transitionLine() line {
	switch v.sim.Phase() {
	case machine.PhaseIdle:
		const text = "... looking for transition"
		return line{text: v.normal(text), width: len(text)}
	case machine.PhaseFinished:
		return line{text: v.title("FINISHED"), width: len("FINISHED")}
	case machine.PhaseInterrupted:
		return line{text: v.title("INTERRUPTED"), width: len("INTERRUPTED")}
	}

	t := v.sim.Transition()
	if t == nil {
		return line{}
	}

	cond := fmt.Sprintf("%s + %s", t.Condition.State, t.Condition.Symbol)
	effect := fmt.Sprintf("%s + %s", t.Effect.Next, t.Effect.Write)
	action := t.Effect.Move.String()
	width := len(cond) + len(effect) + len(action) + 2*len(" |> ")

	switch v.sim.Phase() {
	case machine.PhaseFoundTransition:
		return line{
			text:  v.selected(cond) + v.normal(" |> "+effect+" |> "+action),
			width: width,
		}
	case machine.PhaseChangedState:
		return line{
			text:  v.normal(cond+" |> ") + v.selected(effect) + v.normal(" |> "+action),
			width: width,
		}
	case machine.PhaseMoved:
		return line{
			text:  v.normal(cond+" |> "+effect+" |> ") + v.selected(action),
			width: width,
		}
	}
	return line{}
}

func (v *View) footerLine() line {
	if v.sim.Phase().Terminal() {
		const text = "Press Any Key to Exit"
		return line{text: v.title(text), width: len(text)}
	}

	controls := []string{
		v.controlButton("a", "accelerate"),
		v.controlButton("s", "slow down"),
		v.controlButton("q", "quit"),
	}
	secs := fmt.Sprintf("%.1fs", v.interval().Seconds())
	text := strings.Join(controls, " | ") + " | " + v.dim("interval: ") + v.value(secs)

	plain := "[a] accelerate | [s] slow down | [q] quit | interval: " + secs
	return line{text: text, width: len(plain)}
}

func (v *View) controlButton(key, label string) string {
	return v.dim("[") + v.accent(key) + v.dim("] ") + v.normal(label)
}

func (v *View) title(s string) string {
	return v.out.String(s).Foreground(termenv.ANSIBrightCyan).String()
}

func (v *View) selected(s string) string {
	return v.out.String(s).Foreground(termenv.ANSIBrightYellow).String()
}

func (v *View) selectedUnderlined(s string) string {
	if s == "" {
		return ""
	}
	return v.out.String(s).Foreground(termenv.ANSIBrightYellow).Underline().String()
}

func (v *View) normal(s string) string {
	return v.out.String(s).Foreground(termenv.ANSIWhite).String()
}

func (v *View) normalUnderlined(s string) string {
	if s == "" {
		return ""
	}
	return v.out.String(s).Foreground(termenv.ANSIWhite).Underline().String()
}

func (v *View) dim(s string) string {
	return v.out.String(s).Foreground(termenv.ANSICyan).String()
}

func (v *View) accent(s string) string {
	return v.out.String(s).Foreground(termenv.ANSIYellow).String()
}

func (v *View) value(s string) string {
	return v.out.String(s).Foreground(termenv.ANSIMagenta).String()
}

func spaces(n int) string {
	if n < 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
