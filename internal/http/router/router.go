// Package router builds the complete HTTP handler: middleware chain,
// API routes, operational endpoints and the static-site fallback.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/registration-api/internal/http/handlers/health"
	"github.com/aanand-mishra/registration-api/internal/http/handlers/registration"
	"github.com/aanand-mishra/registration-api/internal/http/handlers/site"
	"github.com/aanand-mishra/registration-api/internal/http/middleware"
	"github.com/aanand-mishra/registration-api/internal/metrics"
	"github.com/aanand-mishra/registration-api/internal/storage"
	"github.com/aanand-mishra/registration-api/internal/utils/response"
)

// Deps are the long-lived collaborators shared by every request.
type Deps struct {
	Storage        storage.Storage
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	AllowedOrigins []string
}

// New returns the root handler.
//
// Route table:
//
//	POST   /api/register            → submit a registration
//	GET    /api/registrations       → list, newest first
//	GET    /api/registrations/{id}  → one registration
//	DELETE /api/registrations/{id}  → delete one registration
//	GET    /api/statistics          → total count
//	GET    /                        → homepage
//	GET    /health/live, /health/ready, /metrics
//
// Anything else is either an embedded static file or a JSON 404.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS(d.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", registration.New(d.Storage, d.Metrics))
		r.Get("/registrations", registration.GetList(d.Storage))
		r.Get("/registrations/{id}", registration.GetByID(d.Storage))
		r.Delete("/registrations/{id}", registration.Delete(d.Storage, d.Metrics))
		r.Get("/statistics", registration.GetStatistics(d.Storage))
	})

	r.Get("/", site.Home())
	r.Get("/health/live", health.Live())
	r.Get("/health/ready", health.Ready(d.Storage))
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	// Unknown paths and known paths with the wrong method look the same
	// to a client: 404 with the standard envelope.
	fallback := site.Assets(response.NotFound)
	r.NotFound(fallback)
	r.MethodNotAllowed(fallback)

	return r
}
