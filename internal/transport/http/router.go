package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-inbox-api/internal/application/inbox"
	"github.com/go-inbox-api/internal/config"
	"github.com/go-inbox-api/internal/domain"
	"github.com/go-inbox-api/internal/transport/http/handler"
	appmiddleware "github.com/go-inbox-api/internal/transport/http/middleware"
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
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 10 requests/second, burst of 20 — applied to the fan-out create endpoint.
	createRL := appmiddleware.NewRateLimiter(rate.Limit(10), 20)

	inboxSvc := inbox.NewService(inbox.ServiceDeps{
		Repo:   deps.MessageRepo,
		Events: deps.Events,
	})

	healthH := handler.NewHealthHandler()
	messageH := handler.NewMessageHandler(inboxSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// Session-user operations, restricted to the caller's own inbox.
			r.Get("/users/{lanID}/messages", messageH.ListOwn)
			r.Get("/users/{lanID}/messages/{msgID}", messageH.GetOwn)
			r.Delete("/users/{lanID}/messages/{msgID}", messageH.DeleteOwn)
			r.Delete("/users/{lanID}/messages", messageH.DeleteExpiredOwn)

			// Trusted service-to-service routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleService))

				r.With(createRL.Limit).Post("/messages", messageH.Create)
				r.With(createRL.Limit).Post("/auth/messages", messageH.Create)
				r.Get("/auth/messages/{msgID}", messageH.Get)
				r.Delete("/auth/messages/{msgID}", messageH.Delete)
				r.Get("/auth/users/{lanID}/messages", messageH.List)
			})
		})
	})

	return r
}
