// Package testutil provides mock servers shared by tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockStatusServer mocks the game server status API.
type MockStatusServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockStatusServer creates a mock status API server. Paths without a
// registered handler answer 404.
func NewMockStatusServer(t *testing.T) *MockStatusServer {
	t.Helper()
	m := &MockStatusServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockServerStatus adds a handler for /server/status.
func (m *MockStatusServer) MockServerStatus(open bool, currentTime int64, players int) {
	m.Handlers["/server/status"] = func(w http.ResponseWriter, _ *http.Request) {
		response := map[string]any{
			"serverOpen":    open,
			"currentTime":   currentTime,
			"onlinePlayers": players,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response) //nolint:errcheck // test mock response
	}
}

// MockServerStatusError makes /server/status answer with the given HTTP code.
func (m *MockStatusServer) MockServerStatusError(code int) {
	m.Handlers["/server/status"] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}
