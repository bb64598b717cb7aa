package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/ribbon/pkg/machine"
)

// Collector accumulates run statistics from engine hooks. It is safe for
// concurrent use, so one collector can watch a session driven over HTTP.
type Collector struct {
	mu sync.Mutex

	started    time.Time
	phases     map[machine.Phase]int
	microSteps int
	steps      int
	halt       machine.Phase
}

// NewCollector creates an empty collector; the clock starts immediately.
func NewCollector() *Collector {
	return &Collector{
		started: time.Now(),
		phases:  make(map[machine.Phase]int),
	}
}

// Hooks returns the engine hooks feeding this collector. Merge them with
// any other hooks the host installs.
func (c *Collector) Hooks() machine.Hooks {
	return machine.Hooks{
		OnPhase: func(_ context.Context, event *machine.StepEvent) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.microSteps++
			c.phases[event.Phase]++
			if event.Phase == machine.PhaseMoved {
				c.steps++
			}
		},
		OnHalt: func(_ context.Context, event *machine.StepEvent) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.halt = event.Phase
		},
	}
}

// Reset clears the counters and restarts the clock, mirroring an engine
// reset.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = time.Now()
	c.phases = make(map[machine.Phase]int)
	c.microSteps = 0
	c.steps = 0
	c.halt = ""
}

// Summary is a point-in-time copy of the collected statistics.
type Summary struct {
	// MicroSteps counts every phase change.
	MicroSteps int `json:"micro_steps"`
	// Steps counts completed logical steps (one per moved phase).
	Steps int `json:"steps"`
	// HaltPhase is set once the run turned terminal.
	HaltPhase machine.Phase `json:"halt_phase,omitempty"`
	// Phases maps each phase to how often it was entered.
	Phases map[machine.Phase]int `json:"phases"`
	// Elapsed is the time since the collector (re)started.
	Elapsed time.Duration `json:"elapsed"`
}

// Halted reports whether the watched run reached a terminal phase.
func (s Summary) Halted() bool { return s.HaltPhase != "" }

// Summary copies the current statistics.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	phases := make(map[machine.Phase]int, len(c.phases))
	for p, n := range c.phases {
		phases[p] = n
	}
	return Summary{
		MicroSteps: c.microSteps,
		Steps:      c.steps,
		HaltPhase:  c.halt,
		Phases:     phases,
		Elapsed:    time.Since(c.started),
	}
}
