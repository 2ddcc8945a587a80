// Package health provides liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/registration-api/internal/utils/response"
)

// Pinger is anything whose reachability decides readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// Status is the body of both probes.
type Status struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Live handles GET /health/live. It answers 200 whenever the process can
// serve HTTP at all.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = response.WriteJSON(w, http.StatusOK, Status{Status: "alive"})
	}
}

// Ready handles GET /health/ready: 200 when the database answers a ping,
// 503 otherwise.
func Ready(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Warn("readiness check failed", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusServiceUnavailable,
				Status{Status: "not_ready", Error: "database unreachable"})
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, Status{Status: "ready"})
	}
}
