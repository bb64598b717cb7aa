package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/observability"
)

// SessionOptions tune one session at creation time. They arrive as a free
// JSON object and are decoded by key.
type SessionOptions struct {
	// MaxSteps caps the logical steps a session may take; once reached the
	// next advance interrupts the run. Zero means unlimited.
	MaxSteps int `mapstructure:"max_steps"`
	// Trace makes advance responses carry the step events they produced.
	Trace bool `mapstructure:"trace"`
	// Label is a human-readable name echoed back in listings.
	Label string `mapstructure:"label"`
}

func decodeOptions(raw map[string]any) (SessionOptions, error) {
	var opts SessionOptions
	if raw == nil {
		return opts, nil
	}
	if err := mapstructure.Decode(raw, &opts); err != nil {
		return opts, fmt.Errorf("failed to decode session options: %w", err)
	}
	if opts.MaxSteps < 0 {
		return opts, fmt.Errorf("max_steps must not be negative")
	}
	return opts, nil
}

// Session binds one simulator to an id so remote callers can drive it over
// several requests. The engine is single-threaded; the session mutex
// serializes every request that touches it.
type Session struct {
	ID      string
	Label   string
	Created time.Time

	mu        sync.Mutex
	sim       *ribbon.Simulator
	collector *observability.Collector
	maxSteps  int
	steps     int
	trace     bool
}

func newSessionID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("session id: %v", err))
	}
	return hex.EncodeToString(buf)
}

// registry is the in-memory session store. Safe for concurrent use.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *registry) get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// list returns sessions ordered by creation time, oldest first. Ties fall
// back to the id so the order is stable.
func (r *registry) list() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// sessionResponse is the wire rendering of a session's observable state.
type sessionResponse struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	Phase      machine.Phase  `json:"phase"`
	State      machine.State  `json:"state"`
	Head       int            `json:"head"`
	Symbol     machine.Symbol `json:"symbol"`
	Halted     bool           `json:"halted"`
	Steps      int            `json:"steps"`
	MicroSteps int            `json:"micro_steps"`
	Created    time.Time      `json:"created"`
}

// snapshot renders the session. Callers must hold s.mu.
func (s *Session) snapshot() sessionResponse {
	summary := s.collector.Summary()
	return sessionResponse{
		ID:         s.ID,
		Label:      s.Label,
		Phase:      s.sim.Phase(),
		State:      s.sim.State(),
		Head:       s.sim.Head(),
		Symbol:     s.sim.Symbol(),
		Halted:     s.sim.Phase().Terminal(),
		Steps:      summary.Steps,
		MicroSteps: summary.MicroSteps,
		Created:    s.Created,
	}
}
