package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loadbench/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHandler_ReturnsSnapshot(t *testing.T) {
	t.Parallel()

	provider := func() StatusSnapshot {
		return StatusSnapshot{
			RunID:          "run-42",
			Phase:          "shooting",
			Generator:      "http",
			RecordsEmitted: 17,
			LastTimestamp:  1766945025,
		}
	}

	handler := NewStatusHandler(provider)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()

	require.NoError(t, handler.Handle(rr, req))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var snapshot StatusSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
	assert.Equal(t, "run-42", snapshot.RunID)
	assert.Equal(t, "shooting", snapshot.Phase)
	assert.Equal(t, int64(17), snapshot.RecordsEmitted)
	assert.Equal(t, int64(1766945025), snapshot.LastTimestamp)
	assert.Nil(t, snapshot.StartedAt)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	handler := NewHealthHandler()
	rr := httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil)))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	router := NewRouter(func() StatusSnapshot {
		return StatusSnapshot{RunID: "run-1", Phase: "created"}
	}, logger)

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{path: "/status", expectedStatus: http.StatusOK},
		{path: "/healthz", expectedStatus: http.StatusNoContent},
		{path: "/metrics", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
