package server

import (
	"net/http"

	"github.com/dvloasia/pagehost/internal/handler"
	"github.com/dvloasia/pagehost/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	// Health checks (no auth)
	healthHandler := handler.NewHealthHandler(s.db)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Public hosting boundary. Unauthenticated by design; the stored
	// visibility flag is not enforced here.
	serveHandler := handler.NewServeHandler(s.site)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Limit)
		r.Get("/sites/{subdomain}", serveHandler.Serve)
		r.Get("/sites/{subdomain}/*", serveHandler.Serve)
	})

	authHandler := handler.NewAuthHandler(s.auth)
	projectHandler := handler.NewProjectHandler(s.site)
	uploadHandler := handler.NewUploadHandler(s.site, s.cfg.MaxUploadBytes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(s.auth))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Post("/projects", projectHandler.Create)
			r.Get("/projects", projectHandler.List)
			r.Get("/projects/{id}", projectHandler.Get)
			r.Delete("/projects/{id}", projectHandler.Delete)
			r.Get("/projects/{id}/files", projectHandler.Files)
			r.Post("/projects/{id}/files", uploadHandler.Upload)
		})
	})

	return r
}
