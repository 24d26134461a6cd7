package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/middleware"
)

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Posts   *PostHandler
	Health  *HealthHandler
	Codec   *auth.Codec
	Logger  *slog.Logger

	IsDevelopment      bool
	MaxRequestBodySize int64
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}

	// Health endpoints (no auth required)
	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}

	// Public pages
	r.Get("/", cfg.Auth.ShowIndex)
	r.Get("/register", cfg.Auth.ShowIndex)
	r.Post("/register", cfg.Auth.Register)
	r.Get("/login", cfg.Auth.ShowLogin)
	r.Post("/login", cfg.Auth.Login)
	r.Get("/logout", cfg.Auth.Logout)

	// Protected routes behind the session gate
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(middleware.SessionConfig{
			Logger: cfg.Logger,
			Codec:  cfg.Codec,
		}))

		r.Get("/profile", cfg.Profile.Profile)
		r.Post("/post", cfg.Posts.Create)
		r.Get("/like/{id}", cfg.Posts.Like)
		r.Get("/edit/{id}", cfg.Posts.ShowEdit)
		r.Post("/edit/{id}", cfg.Posts.Edit)
	})

	// 404 and 405 handlers
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
