/*
Package machine contains the core domain model for the Ribbon engine.

It defines the fundamental entities of a Turing machine: Symbols, States,
Actions, Transitions, and the Machine definition itself, plus the Phase and
StepEvent types hosts use to observe execution. This package is kept pure and
free of external dependencies like I/O or presentation, following Hexagonal
Architecture principles.

# Key Entities

  - Symbol: a single tape-cell character; Empty marks a blank cell.
  - Condition: the (state, symbol) pair that selects a transition.
  - Effect: the (next state, written symbol, head movement) outcome.
  - Table: the Condition to Effect mapping backing all lookups.
  - Machine: an initial State plus a Table; immutable once parsed.
  - Phase: where the engine is inside one decomposed machine transition.
*/
package machine
