package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds the dependencies of NewRouter. Metrics may be nil.
type RouterConfig struct {
	ScoreHandler *ScoreHandler
	BatchHandler *BatchHandler
	RateLimiter  *RateLimiter
	Metrics      http.Handler
}

// NewRouter creates the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog("/health", "/metrics"))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/zscore", func(r chi.Router) {
		r.Get("/history", cfg.ScoreHandler.History)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.RateLimiter))
			r.Post("/score", cfg.ScoreHandler.Score)
			r.Post("/batch", cfg.BatchHandler.ScoreBatch)
		})
	})

	return r
}
