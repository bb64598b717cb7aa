package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/pkg/parser"
)

// buildSimulator loads the definition and seeds a simulator with standard
// CLI conventions. Parse failures are prefixed with the file path so the
// message points at something the user can open.
func buildSimulator(opts RunOptions, logger *slog.Logger) (*ribbon.Simulator, error) {
	m, err := ribbon.LoadMachine(opts.MachinePath)
	if err != nil {
		var parseErr *parser.Error
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%s: %w", opts.MachinePath, err)
		}
		return nil, err
	}

	var simOpts []ribbon.Option
	if opts.Debug {
		simOpts = append(simOpts,
			ribbon.WithLogger(logger),
			ribbon.WithHooks(createDebugHooks(logger)),
		)
	}

	sim, err := ribbon.New(m, opts.Input, simOpts...)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", opts.Input, err)
	}
	return sim, nil
}
