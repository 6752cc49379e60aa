package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/application/session"
	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-contacts-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:       deps.UserRepo,
		Cache:          deps.UserCache,
		Codec:          deps.JWTProvider,
		Mailer:         deps.Mailer,
		AccessTokenTTL: cfg.AccessTokenTTL,
		ResetTokenTTL:  cfg.ResetTokenTTL,
	})
	sessionSvc := session.NewService(deps.JWTProvider, deps.UserCache, deps.UserRepo)
	userSvc := user.NewService(deps.UserRepo, deps.AvatarStore)
	contactSvc := contact.NewService(deps.ContactRepo)

	authMw := appmiddleware.Auth(sessionSvc)
	// 5 requests/second, burst of 10 — applied to sensitive endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc, authSvc)
	contactH := handler.NewContactHandler(contactSvc)
	resetH := handler.NewPasswordResetHandler(authSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)
	r.With(sensitiveRL.Limit).Post("/users/register", userH.Register)
	r.With(sensitiveRL.Limit).Post("/users/token", userH.Token)
	r.With(sensitiveRL.Limit).Post("/password-reset/request", resetH.Request)
	r.With(sensitiveRL.Limit).Post("/password-reset/confirm", resetH.Confirm)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.With(sensitiveRL.Limit).Get("/users/me", userH.Me)
		r.Put("/users/me/avatar", userH.UpdateAvatar)

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactH.Create)
			r.Get("/", contactH.List)
			r.Get("/search", contactH.Search)
			r.Get("/upcoming-birthdays", contactH.UpcomingBirthdays)
			r.Get("/{id}", contactH.Get)
			r.Put("/{id}", contactH.Update)
			r.Delete("/{id}", contactH.Delete)
		})
	})

	return r
}
