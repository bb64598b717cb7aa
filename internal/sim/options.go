package sim

import (
	"log/slog"

	"github.com/aretw0/ribbon/pkg/machine"
)

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger routes engine diagnostics to the given structured logger.
// Phase changes are logged at debug level, four per logical step.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers observability callbacks. OnPhase fires after every
// effective advance, OnHalt once when the engine turns terminal.
func WithHooks(hooks machine.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}
