package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/dvloasia/pagehost/internal/auth"
	"github.com/dvloasia/pagehost/internal/config"
	"github.com/dvloasia/pagehost/internal/middleware"
	"github.com/dvloasia/pagehost/internal/site"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Server is the HTTP server.
type Server struct {
	cfg         *config.Config
	db          *pgxpool.Pool
	site        *site.Service
	auth        *auth.Service
	rateLimiter *middleware.RateLimiter
	server      *http.Server
}

// New creates a new Server. The database pool and both services are
// owned by the caller and injected here.
func New(cfg *config.Config, db *pgxpool.Pool, siteSvc *site.Service, authSvc *auth.Service) *Server {
	rlCfg := middleware.DefaultRateLimitConfig()
	if cfg.ServeRatePerSecond > 0 {
		rlCfg.RatePerSecond = cfg.ServeRatePerSecond
	}
	if cfg.ServeBurst > 0 {
		rlCfg.Burst = cfg.ServeBurst
	}

	s := &Server{
		cfg:         cfg,
		db:          db,
		site:        siteSvc,
		auth:        authSvc,
		rateLimiter: middleware.NewRateLimiter(rlCfg),
	}

	s.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Serve starts the HTTP server on the given listener.
func (s *Server) Serve(l net.Listener) error {
	return s.server.Serve(l)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
