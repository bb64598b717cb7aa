package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/ribbon/internal/logging"
	"github.com/aretw0/ribbon/pkg/machine"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal afterwards.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. It writes to Stderr to
// keep Stdout free for the tape view and the NDJSON stream; with a log file
// every record is mirrored there as JSON. The returned closer releases the
// file.
func createLogger(debug bool, logFile string) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewTee(level, f), func() { _ = f.Close() }, nil
	}

	if !debug {
		return logging.NewNop(), func() {}, nil
	}
	return logging.New(level), func() {}, nil
}

// createDebugHooks traces every micro-step through the logger.
func createDebugHooks(logger *slog.Logger) machine.Hooks {
	return machine.Hooks{
		OnPhase: func(_ context.Context, e *machine.StepEvent) {
			logger.Debug("Phase", "phase", e.Phase, "state", e.State, "head", e.Head, "symbol", e.Symbol)
		},
		OnHalt: func(_ context.Context, e *machine.StepEvent) {
			logger.Debug("Halted", "phase", e.Phase, "state", e.State, "head", e.Head)
		},
	}
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
