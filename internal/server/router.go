package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"

	"calcservice/internal/arithmetic"
	"calcservice/internal/handlers"
	"calcservice/internal/observability"
	"calcservice/internal/trigonometry"
	"calcservice/internal/validation"
)

// NewRouter wires both calculation services, health and metrics behind the
// request ID, tracing and access log middlewares. Everything it builds is
// shared read-only across requests.
func NewRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	validate := validation.New()

	arithmeticMetrics, err := observability.NewOperationMetrics(otel.Meter("arithmetic"), "arithmetic")
	if err != nil {
		return nil, err
	}
	arithmetic.RegisterRoutes(r, arithmetic.NewHandler(validate, arithmeticMetrics))

	trigonometryMetrics, err := observability.NewOperationMetrics(otel.Meter("trigonometry"), "trigonometry")
	if err != nil {
		return nil, err
	}
	trigonometry.RegisterRoutes(r, trigonometry.NewHandler(validate, trigonometryMetrics))

	return r, nil
}
