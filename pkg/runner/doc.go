/*
Package runner implements the paced execution loop that turns an engine's
micro-steps into an animated run.

It acts as the bridge between the simulation core and the outside world. The
runner advances the engine on a fixed interval, listens for keyboard controls
between steps, and hands every step event to a pluggable IOHandler so the
same loop can feed a fullscreen terminal view, a plain text log or an NDJSON
stream.

# Key Components

  - Runner: the loop; owns pacing and the keyboard.
  - IOHandler: decouples how step events are presented (TUI, text, JSON).
  - TextHandler / JSONHandler: the standard implementations.
  - ReadKeys: raw-mode keyboard pump used for interactive runs.

# Pacing

The wait between steps is a deadline, not a sleep: a key press is handled
immediately and the wait continues against the adjusted interval. During a
run "a" accelerates, "s" slows down and "q" interrupts; once the run halts,
any key exits.

# Usage

	r := runner.New(sim, runner.NewTextHandler(os.Stdout, sim),
		runner.WithInterval(300*time.Millisecond),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
