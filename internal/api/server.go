// Copyright (c) 2026 Shelfmark. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

It is the composition root for the HTTP transport: only this package and
cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shelfmark/shelfmark/internal/core/author"
	"github.com/shelfmark/shelfmark/internal/core/book"
	"github.com/shelfmark/shelfmark/internal/core/booktype"
	copies "github.com/shelfmark/shelfmark/internal/core/copy"
	"github.com/shelfmark/shelfmark/internal/core/location"
	"github.com/shelfmark/shelfmark/internal/core/publisher"
	"github.com/shelfmark/shelfmark/internal/core/series"
	"github.com/shelfmark/shelfmark/internal/core/tag"
	"github.com/shelfmark/shelfmark/internal/platform/config"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	"github.com/shelfmark/shelfmark/internal/users/auth"
)

// Server wraps the chi router and the [http.Server]. It is constructed
// once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups all domain-specific HTTP handler sets.
//
// New resources add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Auth *auth.Handler

	Author    *author.Handler
	Publisher *publisher.Handler
	BookType  *booktype.Handler
	Series    *series.Handler
	Tag       *tag.Handler
	Location  *location.Handler
	Book      *book.Handler
	Copy      *copies.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Every catalog route requires an authenticated owner.
		api.Group(func(catalog chi.Router) {
			catalog.Use(middleware.RequireAuth)

			catalog.Route("/authors", h.Author.RegisterRoutes)
			catalog.Route("/publishers", h.Publisher.RegisterRoutes)
			catalog.Route("/booktypes", h.BookType.RegisterRoutes)
			catalog.Route("/series", h.Series.RegisterRoutes)
			catalog.Route("/tags", h.Tag.RegisterRoutes)
			catalog.Route("/locations", h.Location.RegisterRoutes)
			catalog.Route("/books", h.Book.RegisterRoutes)
			catalog.Route("/copies", h.Copy.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server. It blocks until the server is
// closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
