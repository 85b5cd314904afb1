package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/bballscorer/internal/api/handler"
	"github.com/albapepper/bballscorer/internal/config"
	"github.com/albapepper/bballscorer/internal/metrics"
	"github.com/albapepper/bballscorer/internal/report"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(builder *report.Builder, recorder *metrics.Recorder, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware(logger))
	r.Use(recorder.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "Content-Disposition", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(builder, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	if recorder.Enabled() {
		r.Handle("/metrics", recorder.Handler())
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Teams
		r.Get("/teams/matchup", h.TeamMatchup)
		r.Get("/teams/h2h", h.TeamH2H)
		r.Get("/teams/next_game", h.TeamNextGame)

		// Players
		r.Get("/players/lines", h.PlayerLines)
		r.Get("/players/search", h.PlayerSearch)

		// Bootstrap / autofill
		r.Get("/autofill", h.GetAutofill)
	})

	return r
}
