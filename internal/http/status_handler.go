package http

import (
	"encoding/json"
	"net/http"
	"time"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// StatusSnapshot is the GET /status payload: a point-in-time view of the
// current run.
type StatusSnapshot struct {
	RunID          string     `json:"runId"`
	Phase          string     `json:"phase"`
	Generator      string     `json:"generator"`
	RecordsEmitted int64      `json:"recordsEmitted"`
	LastTimestamp  int64      `json:"lastTimestamp,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
}

// StatusProvider assembles a snapshot on demand. The app layer wires it to
// the run core and the dispatcher so this package stays free of run state.
type StatusProvider func() StatusSnapshot

type statusHandler struct {
	provider StatusProvider
}

func NewStatusHandler(provider StatusProvider) AppHttpHandler {
	return &statusHandler{provider: provider}
}

// Handle processes GET /status requests.
func (h *statusHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	snapshot := h.provider()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(snapshot)
}

type healthHandler struct{}

func NewHealthHandler() AppHttpHandler {
	return &healthHandler{}
}

// Handle processes GET /healthz requests.
func (h *healthHandler) Handle(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
