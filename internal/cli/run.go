package cli

import "fmt"

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	MachinePath string
	Input       string
	// Interval is the animation pace in seconds.
	Interval float64
	MaxSteps int
	Headless bool
	JSON     bool
	Verbose  bool
	Quiet    bool
	Debug    bool
	LogFile  string
}

// Execute handles the run command logic, dispatching to the right
// presentation mode.
func Execute(opts RunOptions) error {
	if opts.MachinePath == "" {
		return fmt.Errorf("a machine definition file is required (use --machine)")
	}
	if opts.JSON && opts.Headless {
		return fmt.Errorf("--json and --headless cannot be used together")
	}
	if opts.Interval < 0 {
		return fmt.Errorf("--interval must not be negative")
	}

	return RunSession(opts)
}
