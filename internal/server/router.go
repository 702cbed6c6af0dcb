package server

import (
	"net/http"

	"github.com/cloo-solutions/deepsearch/internal/api/handlers"
	"github.com/cloo-solutions/deepsearch/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Logger            zerolog.Logger
	DeepSearchHandler *handlers.DeepSearchHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/deep-search", cfg.DeepSearchHandler.Search)
	})

	return r
}
