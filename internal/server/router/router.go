// Package router wires the HTTP surface: public auth/health endpoints
// and a token-guarded group for the sync and read endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/campushealth/clinicsync/internal/server/handlers"
	"github.com/campushealth/clinicsync/internal/server/middleware"
)

// Config holds the handlers and middleware the router composes.
type Config struct {
	Auth      *handlers.AuthHandler
	Sync      *handlers.SyncHandler
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Medicines *handlers.MedicineHandler

	AuthMiddleware    func(http.Handler) http.Handler
	LoggingMiddleware func(http.Handler) http.Handler
	RecoverMiddleware func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cfg.RecoverMiddleware)
	r.Use(middleware.RequestID)
	r.Use(cfg.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public: login and the health probe clients use as their
		// connectivity signal.
		r.Get("/health", cfg.Health.Health)
		r.Post("/auth/login", cfg.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware)

			r.Post("/offline-queue/sync", cfg.Sync.Sync)
			r.Get("/dashboard/stats", cfg.Dashboard.Stats)
			r.Get("/medicines", cfg.Medicines.List)
		})
	})

	return r
}
