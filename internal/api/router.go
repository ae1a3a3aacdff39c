package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/antonveselov/voicegen/internal/api/handlers"
	"github.com/antonveselov/voicegen/internal/api/middleware"
	"github.com/antonveselov/voicegen/internal/config"
	"github.com/antonveselov/voicegen/internal/convert"
	"github.com/antonveselov/voicegen/internal/generate"
	"github.com/antonveselov/voicegen/internal/metrics"
)

type Router struct {
	mux          *chi.Mux
	cfg          *config.Config
	useCase      *generate.UseCase
	converter    *convert.Converter
	providerName string
}

func NewRouter(cfg *config.Config, uc *generate.UseCase, conv *convert.Converter, providerName string) *Router {
	return &Router{
		mux:          chi.NewRouter(),
		cfg:          cfg,
		useCase:      uc,
		converter:    conv,
		providerName: providerName,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Health and observability endpoints (no auth)
	health := handlers.NewHealthHandler(rt.providerName, rt.converter)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.APIKey(rt.cfg.Auth.APIKey))

		voiceH := handlers.NewVoiceHandler(rt.useCase, rt.converter)
		r.Post("/voice", voiceH.Generate)
	})

	return r
}
