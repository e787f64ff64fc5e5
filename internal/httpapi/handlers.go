package httpapi

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Yonajim/NPUPlatform/internal/obs"
)

const defaultMaxBody = 1 << 20

// ReadyProbe checks readiness, typically a database ping.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// mountOps adds the operational endpoints every service exposes.
func mountOps(r chi.Router, service, version string, probe ReadyProbe) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"service": service,
			"version": version,
		})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := probe.Check(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})
	r.Get("/v1/info", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"name":    service,
			"time":    time.Now().UTC().Format(time.RFC3339),
			"version": version,
		})
	})
	r.Method(http.MethodGet, "/metrics", obs.Handler())
}

// chain wraps a router in the standard middleware stack.
func chain(log *slog.Logger, maxBody int64, h http.Handler) http.Handler {
	h = MaxBodyBytes(h, maxBody)
	h = SecurityHeaders(h)
	h = RequestLogger(log, h)
	h = RequestID(h)
	return obs.Instrument(h)
}
