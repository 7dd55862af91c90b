package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpserver "github.com/dmitrymomot/blueprint/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("no blueprints loaded") }

	tests := []struct {
		name   string
		checks []httpserver.Check
		code   int
		body   string
	}{
		{name: "liveness", code: http.StatusOK, body: `{"status":"alive"}`},
		{name: "ready", checks: []httpserver.Check{ok, ok}, code: http.StatusOK, body: `{"status":"ready"}`},
		{name: "not ready", checks: []httpserver.Check{ok, fail}, code: http.StatusServiceUnavailable, body: `{"status":"not_ready"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
