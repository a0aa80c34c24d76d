package http

import (
	"net/http"

	"loadbench/internal/shared/loggers"
	"loadbench/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the status server router.
func NewRouter(statusProvider StatusProvider, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Routes
	router.Get("/status", errorHandlingAdapter(NewStatusHandler(statusProvider)))
	router.Get("/healthz", errorHandlingAdapter(NewHealthHandler()))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
