package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/internal/handlers/health"
)

func TestHandler_Health(t *testing.T) {
	handler := health.NewWithChecks()
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body health.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "Care Ops Hub API is running!", body.Message)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestHandler_Ready(t *testing.T) {
	ok := health.Check{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := health.Check{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: connection refused") }}

	tests := []struct {
		name       string
		checks     []health.Check
		wantCode   int
		wantChecks []string
	}{
		{name: "all dependencies up", checks: []health.Check{ok}, wantCode: http.StatusOK, wantChecks: []string{"postgres"}},
		{name: "redis down", checks: []health.Check{ok, down}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewWithChecks(tt.checks...)
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				assert.Contains(t, rec.Body.String(), "SERVER UNHEALTHY")

				return
			}

			var body health.ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "ready", body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}
