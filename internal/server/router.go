// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bmi-tracker/internal/clock"
	"bmi-tracker/internal/domain"
	"bmi-tracker/internal/handlers"
	"bmi-tracker/internal/observability"
	"bmi-tracker/internal/records"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Store domain.RecordStore
	// Clock stamps record dates; the system clock when nil.
	Clock clock.Clock
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(observability.HTTPMetricsMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	records.RegisterRoutes(r, records.NewHandler(records.NewService(deps.Store, deps.Clock)))

	return r
}
