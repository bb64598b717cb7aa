// Package httpapi exposes simulations as remotely driven sessions over a
// JSON API. A session wraps one simulator; callers create it from a
// definition text, advance it micro-step by micro-step, inspect the tape and
// tear it down. Sessions live in process memory only and die with the server.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/ribbon"
	"github.com/aretw0/ribbon/internal/logging"
	"github.com/aretw0/ribbon/pkg/machine"
	"github.com/aretw0/ribbon/pkg/observability"
	"github.com/aretw0/ribbon/pkg/parser"
)

const (
	// maxAdvancePerRequest bounds how many micro-steps one advance call may
	// perform, so a single request cannot hold a session lock forever.
	maxAdvancePerRequest = 10000
	// maxTapeWindow bounds the cells one tape query may materialize.
	maxTapeWindow = 4096
)

// Server hosts sessions behind a chi router.
type Server struct {
	logger   *slog.Logger
	sessions *registry
	metrics  *metrics
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the structured logger used for request and session events.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a session server with an empty registry.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		logger:   logging.NewNop(),
		sessions: newRegistry(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/health", s.getHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/advance", s.advanceSession)
			r.Post("/interrupt", s.interruptSession)
			r.Post("/reset", s.resetSession)
			r.Get("/tape", s.getTape)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(ribbon.Version),
	})
}

type createSessionRequest struct {
	Definition string         `json:"definition"`
	Input      string         `json:"input"`
	Options    map[string]any `json:"options"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts, err := decodeOptions(body.Options)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := ribbon.ParseMachine(strings.Split(body.Definition, "\n"))
	if err != nil {
		respondParseError(w, err)
		return
	}

	collector := observability.NewCollector()
	sim, err := ribbon.New(m, body.Input,
		ribbon.WithHooks(collector.Hooks().Merge(s.metrics.hooks())),
		ribbon.WithLogger(s.logger),
	)
	if err != nil {
		respondParseError(w, err)
		return
	}

	session := &Session{
		ID:        newSessionID(),
		Label:     opts.Label,
		Created:   time.Now().UTC(),
		sim:       sim,
		collector: collector,
		maxSteps:  opts.MaxSteps,
		trace:     opts.Trace,
	}
	s.sessions.add(session)
	s.metrics.sessionsCreated.Inc()

	s.logger.Info("session created",
		"session_id", session.ID,
		"label", session.Label,
		"initial_state", m.Initial,
	)

	session.mu.Lock()
	defer session.mu.Unlock()
	respondJSON(w, http.StatusCreated, session.snapshot())
}

func (s *Server) listSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := s.sessions.list()
	out := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		session.mu.Lock()
		out = append(out, session.snapshot())
		session.mu.Unlock()
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sessions": out,
		"count":    len(out),
	})
}

// session resolves the {sessionID} route parameter, answering 404 itself
// when no such session exists.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "sessionID")
	session, ok := s.sessions.get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	respondJSON(w, http.StatusOK, session.snapshot())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.remove(id) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

type advanceRequest struct {
	// Steps is the number of micro-steps to perform. Zero means one.
	Steps int `json:"steps"`
}

type advanceResponse struct {
	sessionResponse
	Performed int                  `json:"performed"`
	Events    []*machine.StepEvent `json:"events,omitempty"`
}

func (s *Server) advanceSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	steps := 1
	if r.Body != nil && r.ContentLength != 0 {
		var body advanceRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Steps < 0 {
			respondError(w, http.StatusBadRequest, "steps must not be negative")
			return
		}
		if body.Steps > maxAdvancePerRequest {
			respondError(w, http.StatusBadRequest, "steps exceeds the per-request limit")
			return
		}
		if body.Steps > 0 {
			steps = body.Steps
		}
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	var events []*machine.StepEvent
	performed := 0
	for i := 0; i < steps; i++ {
		if !session.sim.Advance(r.Context()) {
			break
		}
		performed++

		event := session.sim.Snapshot()
		if session.trace {
			events = append(events, event)
		}

		if event.Phase == machine.PhaseMoved {
			session.steps++
			if session.maxSteps > 0 && session.steps >= session.maxSteps {
				session.sim.Interrupt(r.Context())
				if session.trace {
					events = append(events, session.sim.Snapshot())
				}
				break
			}
		}
	}

	respondJSON(w, http.StatusOK, advanceResponse{
		sessionResponse: session.snapshot(),
		Performed:       performed,
		Events:          events,
	})
}

func (s *Server) interruptSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.sim.Interrupt(r.Context())
	respondJSON(w, http.StatusOK, session.snapshot())
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.sim.Reset()
	session.collector.Reset()
	session.steps = 0
	respondJSON(w, http.StatusOK, session.snapshot())
}

type tapeResponse struct {
	From  int              `json:"from"`
	To    int              `json:"to"`
	Head  int              `json:"head"`
	Cells []machine.Symbol `json:"cells"`
	Tape  string           `json:"tape"`
}

// getTape returns the cells in the half-open offset range [from, to). The
// range defaults to the storage the run has touched so far.
func (s *Server) getTape(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	from, to := session.sim.TapeBounds()
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "from must be an integer")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "to must be an integer")
			return
		}
		to = parsed
	}
	if to < from {
		respondError(w, http.StatusBadRequest, "to must not be smaller than from")
		return
	}
	if to-from > maxTapeWindow {
		respondError(w, http.StatusBadRequest, "tape window is too large")
		return
	}

	respondJSON(w, http.StatusOK, tapeResponse{
		From:  from,
		To:    to,
		Head:  session.sim.Head(),
		Cells: session.sim.TapeWindow(from, to),
		Tape:  session.sim.TapeString(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is gone; nothing left to do but drop it.
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondParseError maps definition and input failures onto 400 responses
// carrying the error kind and position, so clients can point at the
// offending line or column.
func respondParseError(w http.ResponseWriter, err error) {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error": parseErr.Error(),
			"kind":  string(parseErr.Kind),
			"index": parseErr.Index,
		})
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}
