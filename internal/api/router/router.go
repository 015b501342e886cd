package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxlate/voxlate/internal/api/handlers"
	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/metrics"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Translate *handlers.TranslateHandler
	Session   *handlers.SessionHandler
	Settings  *handlers.SettingsHandler
	Account   *handlers.AccountHandler
	Synthesis *handlers.SynthesizeHandler
}

// New builds the HTTP routing table
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200))
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())

		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Voice translation: per-user limited on top of the global IP
		// limit, since each request fans out to upstream compute.
		r.Group(func(r chi.Router) {
			r.Use(middleware.UserRateLimit(2, 5))
			r.Post("/api/v1/translate", h.Translate.Translate)
			r.Post("/api/v1/synthesize", h.Synthesis.Synthesize)
		})

		r.Get("/api/v1/translations", h.Translate.History)

		r.Route("/api/v1/session", func(r chi.Router) {
			r.Get("/", h.Session.Get)
			r.Post("/language", h.Session.SelectLanguage)
			r.Delete("/language", h.Session.Clear)
		})

		r.Route("/api/v1/languages", func(r chi.Router) {
			r.Get("/", h.Settings.ListLanguages)
			r.Put("/", h.Settings.SetLanguages)
			r.Post("/swap", h.Settings.SwapLanguages)
		})

		r.Get("/api/v1/limits", h.Account.Limits)
		r.Get("/api/v1/stats", h.Account.Stats)
		r.Post("/api/v1/subscription/upgrade", h.Account.Upgrade)
	})

	return r
}
