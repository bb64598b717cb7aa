package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scanDefinition = `right
right + 1 |> right + 1 |> R
right + 0 |> right + 0 |> R
right + _ |> done + _ |> N`

const spinDefinition = `spin
spin + _ |> spin + _ |> R`

func newTestHandler() http.Handler {
	return NewServer().Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded), "body %q", rr.Body.String())
	}
	return rr, decoded
}

func createSession(t *testing.T, handler http.Handler, definition, input string, options map[string]any) string {
	t.Helper()

	rr, resp := doJSON(t, handler, "POST", "/api/sessions", map[string]any{
		"definition": definition,
		"input":      input,
		"options":    options,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	id, ok := resp["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	return id
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler()

	rr, resp := doJSON(t, handler, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["version"])
}

func TestCreateSession(t *testing.T) {
	handler := newTestHandler()

	rr, resp := doJSON(t, handler, "POST", "/api/sessions", map[string]any{
		"definition": scanDefinition,
		"input":      "101",
		"options":    map[string]any{"label": "scan demo"},
	})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "scan demo", resp["label"])
	assert.Equal(t, "idle", resp["phase"])
	assert.Equal(t, "right", resp["state"])
	assert.Equal(t, float64(0), resp["head"])
	assert.Equal(t, false, resp["halted"])
}

func TestCreateSession_DefinitionError(t *testing.T) {
	handler := newTestHandler()

	rr, resp := doJSON(t, handler, "POST", "/api/sessions", map[string]any{
		"definition": "start\nstart + 1 |> broken",
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_transition", resp["kind"])
	assert.Equal(t, float64(2), resp["index"])
	assert.Contains(t, resp["error"], "line 2")
}

func TestCreateSession_InputError(t *testing.T) {
	handler := newTestHandler()

	rr, resp := doJSON(t, handler, "POST", "/api/sessions", map[string]any{
		"definition": scanDefinition,
		"input":      "10x",
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_symbol", resp["kind"])
	assert.Equal(t, float64(2), resp["index"])
}

func TestCreateSession_OptionErrors(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name    string
		options map[string]any
	}{
		{"negative max_steps", map[string]any{"max_steps": -1}},
		{"wrong type", map[string]any{"max_steps": "plenty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := doJSON(t, handler, "POST", "/api/sessions", map[string]any{
				"definition": scanDefinition,
				"options":    tt.options,
			})
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	handler := newTestHandler()

	rr, resp := doJSON(t, handler, "GET", "/api/sessions/deadbeef", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "session not found", resp["error"])
}

func TestAdvanceSession_RunsToCompletion(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, scanDefinition, "101", nil)

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": 100})

	require.Equal(t, http.StatusOK, rr.Code)
	// Four logical steps of four micro-steps each, plus the halting lookup.
	assert.Equal(t, float64(17), resp["performed"])
	assert.Equal(t, float64(17), resp["micro_steps"])
	assert.Equal(t, float64(4), resp["steps"])
	assert.Equal(t, "finished", resp["phase"])
	assert.Equal(t, "done", resp["state"])
	assert.Equal(t, true, resp["halted"])
}

func TestAdvanceSession_HaltedStaysHalted(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, "halt", "", nil)

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), resp["performed"])
	assert.Equal(t, true, resp["halted"])

	rr, resp = doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), resp["performed"])
	assert.Equal(t, true, resp["halted"])
	assert.Equal(t, "finished", resp["phase"])
}

func TestAdvanceSession_MaxStepsInterrupts(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, spinDefinition, "", map[string]any{"max_steps": 2})

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": 100})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "interrupted", resp["phase"])
	assert.Equal(t, true, resp["halted"])
	assert.Equal(t, float64(2), resp["steps"])
	// The advance that hit the cap stops right after the second move.
	assert.Equal(t, float64(7), resp["performed"])
}

func TestAdvanceSession_Trace(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, "halt", "", map[string]any{"trace": true})

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	events, ok := resp["events"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
	event := events[0].(map[string]any)
	assert.Equal(t, "finished", event["phase"])
}

func TestAdvanceSession_RejectsBadSteps(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, "halt", "", nil)

	rr, _ := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": maxAdvancePerRequest + 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInterruptSession(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, spinDefinition, "", nil)

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/interrupt", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "interrupted", resp["phase"])
	assert.Equal(t, true, resp["halted"])
}

func TestResetSession_Replays(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, scanDefinition, "101", nil)

	_, first := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": 100})
	require.Equal(t, true, first["halted"])

	rr, resp := doJSON(t, handler, "POST", "/api/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "idle", resp["phase"])
	assert.Equal(t, "right", resp["state"])
	assert.Equal(t, float64(0), resp["head"])
	assert.Equal(t, float64(0), resp["steps"])
	assert.Equal(t, float64(0), resp["micro_steps"])
	assert.Equal(t, false, resp["halted"])

	// A reset run replays identically.
	_, second := doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": 100})
	assert.Equal(t, first["performed"], second["performed"])
	assert.Equal(t, first["state"], second["state"])
	assert.Equal(t, first["head"], second["head"])
}

func TestGetTape(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, scanDefinition, "101", nil)

	_, _ = doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", map[string]any{"steps": 100})

	rr, resp := doJSON(t, handler, "GET", "/api/sessions/"+id+"/tape", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), resp["from"])
	assert.Equal(t, float64(4), resp["to"])
	assert.Equal(t, float64(3), resp["head"])
	assert.Equal(t, []any{"1", "0", "1", "_"}, resp["cells"])
	assert.Equal(t, "|101_", resp["tape"])
}

func TestGetTape_ExplicitRangeReachesUntouchedCells(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, scanDefinition, "101", nil)

	rr, resp := doJSON(t, handler, "GET", "/api/sessions/"+id+"/tape?from=-2&to=2", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(-2), resp["from"])
	assert.Equal(t, float64(2), resp["to"])
	assert.Equal(t, []any{"_", "_", "1", "0"}, resp["cells"])
}

func TestGetTape_RangeErrors(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, scanDefinition, "101", nil)

	tests := []struct {
		name  string
		query string
	}{
		{"junk from", "?from=abc"},
		{"junk to", "?to=1.5"},
		{"inverted", "?from=5&to=1"},
		{"oversized", fmt.Sprintf("?from=0&to=%d", maxTapeWindow+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := doJSON(t, handler, "GET", "/api/sessions/"+id+"/tape"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, "halt", "", nil)

	rr, _ := doJSON(t, handler, "DELETE", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr, _ = doJSON(t, handler, "GET", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSON(t, handler, "DELETE", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListSessions(t *testing.T) {
	handler := newTestHandler()
	createSession(t, handler, "halt", "", map[string]any{"label": "first"})
	createSession(t, handler, spinDefinition, "", map[string]any{"label": "second"})

	rr, resp := doJSON(t, handler, "GET", "/api/sessions", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(2), resp["count"])

	sessions, ok := resp["sessions"].([]any)
	require.True(t, ok)
	var labels []string
	for _, raw := range sessions {
		labels = append(labels, raw.(map[string]any)["label"].(string))
	}
	assert.ElementsMatch(t, []string{"first", "second"}, labels)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler()
	id := createSession(t, handler, "halt", "", nil)
	_, _ = doJSON(t, handler, "POST", "/api/sessions/"+id+"/advance", nil)

	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "ribbon_sessions_created_total 1")
	assert.Contains(t, body, "ribbon_micro_steps_total 1")
	assert.Contains(t, body, `ribbon_halts_total{phase="finished"} 1`)
}
