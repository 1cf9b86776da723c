// Package httptransport is the thin HTTP layer. It decodes requests into
// untyped field bags, delegates to the entity services, and maps coded errors
// onto statuses. Business logic never lives here.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"scholarhub/internal/audit"
	"scholarhub/pkg/platform/httputil"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps bundles everything the router needs. Nil health checkers are skipped,
// which keeps in-memory test wiring trivial.
type Deps struct {
	Accounts     AccountService
	Projects     ProjectService
	Updates      UpdateService
	Applications ApplicationService
	Audit        *audit.Publisher
	Store        HealthChecker
	Cache        HealthChecker
	Log          zerolog.Logger
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(d.Log))
	r.Use(RequestID)
	r.Use(Logger(d.Log))

	(&accountHandler{svc: d.Accounts}).register(r)
	(&projectHandler{svc: d.Projects}).register(r)
	(&updateHandler{svc: d.Updates}).register(r)
	(&applicationHandler{svc: d.Applications}).register(r)

	r.Get("/audit/events", func(w http.ResponseWriter, req *http.Request) {
		events, err := d.Audit.List(req.Context())
		writeResult(w, http.StatusOK, events, err)
	})

	r.Get("/healthz", healthHandler(d.Store, d.Cache))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(store, cache HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if store != nil {
			if err := store.Health(r.Context()); err != nil {
				status["store"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if cache != nil {
			if err := cache.Health(r.Context()); err != nil {
				status["cache"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		httputil.WriteJSON(w, code, status)
	}
}
