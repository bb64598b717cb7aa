// Package tape implements the bi-infinite storage a Turing machine head
// works on. Cells are addressed by signed offsets; anything never written
// reads as the empty symbol.
package tape

import (
	"strings"

	"github.com/aretw0/ribbon/pkg/machine"
)

// Tape is an unbounded sequence of symbols addressed by signed offsets. It
// is backed by two growable arenas: one for offsets >= 0 and one for the
// negative side, where offset i maps to index -i-1. Both sides extend on
// first access past their length, filling the gap with machine.Empty, so a
// cell is never left uninitialized.
//
// A Tape is not safe for concurrent use; the engine owns it and hosts read
// it through the engine's accessors.
type Tape struct {
	pos []machine.Symbol
	neg []machine.Symbol
}

// New creates a tape seeded with input at offsets 0..len(input)-1. The
// input slice is copied so later writes never leak back into the caller's
// sequence.
func New(input []machine.Symbol) *Tape {
	t := &Tape{pos: make([]machine.Symbol, len(input))}
	copy(t.pos, input)
	return t
}

func (t *Tape) locate(offset int) (*[]machine.Symbol, int) {
	if offset >= 0 {
		return &t.pos, offset
	}
	return &t.neg, -offset - 1
}

func grow(arena *[]machine.Symbol, index int) {
	for len(*arena) <= index {
		*arena = append(*arena, machine.Empty)
	}
}

// Get reads the symbol at offset, extending storage so the cell exists.
func (t *Tape) Get(offset int) machine.Symbol {
	arena, index := t.locate(offset)
	grow(arena, index)
	return (*arena)[index]
}

// Set writes the symbol at offset, extending storage as needed.
func (t *Tape) Set(offset int, s machine.Symbol) {
	arena, index := t.locate(offset)
	grow(arena, index)
	(*arena)[index] = s
}

// Window returns the symbols in the half-open offset range [from, to).
// Reading through Window extends storage just like Get does.
func (t *Tape) Window(from, to int) []machine.Symbol {
	if to <= from {
		return nil
	}
	out := make([]machine.Symbol, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, t.Get(i))
	}
	return out
}

// Bounds returns the half-open offset range [lo, hi) currently backed by
// storage. Cells outside it read as machine.Empty.
func (t *Tape) Bounds() (int, int) {
	return -len(t.neg), len(t.pos)
}

// String renders every backed cell left to right, with "|" marking the
// boundary before offset zero.
func (t *Tape) String() string {
	var sb strings.Builder
	for i := len(t.neg) - 1; i >= 0; i-- {
		sb.WriteString(t.neg[i].String())
	}
	sb.WriteString("|")
	for _, s := range t.pos {
		sb.WriteString(s.String())
	}
	return sb.String()
}
