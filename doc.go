/*
Package ribbon is a deterministic Turing machine simulator: it parses plain
text machine definitions, executes them step by step on a bi-infinite tape,
and exposes every intermediate phase of the execution to the host.

# Concept

Ribbon splits a run into observable micro-steps. A single logical step of the
machine (read, rewrite, move) is surfaced as three phases: found transition,
changed state, and moved. Hosts subscribe to phase changes to animate, trace,
or meter the run; the engine stays a pure state core with no I/O of its own.
This keeps the simulator embeddable in any interface: terminal UI, NDJSON
pipeline, or HTTP session server.

# Key Features

  - Deterministic Execution: the same definition and input always replay the
    same phase sequence.
  - Bi-infinite Tape: the head may move arbitrarily far in both directions;
    cells default to the empty symbol.
  - Observable Phases: hooks fire on every phase change and on halt.
  - Strict Parsing: definitions are validated line by line with positional
    errors before anything runs.

# Usage

Load a definition, create a Simulator and drive it until it halts:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/ribbon"
	)

	func main() {
		m, err := ribbon.LoadMachine("increment.tm")
		if err != nil {
			log.Fatal(err)
		}

		sim, err := ribbon.New(m, "199")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		for sim.Advance(ctx) {
		}

		fmt.Println(sim.Phase(), sim.TapeString())
	}
*/
package ribbon
