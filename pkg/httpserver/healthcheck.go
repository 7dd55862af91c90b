package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/blueprint/pkg/logger"
)

// Check reports whether a dependency of the server is ready.
type Check func(ctx context.Context) error

type healthStatus struct {
	Status string `json:"status"`
}

// HealthCheckHandler returns a handler usable for liveness and readiness
// probes. Without checks it always answers 200 {"status":"alive"}. With checks
// it answers 200 {"status":"ready"} when all of them pass and 503
// {"status":"not_ready"} otherwise. Checks run with the request context.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			writeHealth(w, http.StatusOK, "alive")
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				writeHealth(w, http.StatusServiceUnavailable, "not_ready")
				return
			}
		}
		writeHealth(w, http.StatusOK, "ready")
	}
}

func writeHealth(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthStatus{Status: status})
}
