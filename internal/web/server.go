// Package web serves catalog queries and the report over HTTP.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Damilavkin/price-list/internal/config"
	"github.com/Damilavkin/price-list/internal/core"
	pricemw "github.com/Damilavkin/price-list/internal/web/middleware"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Catalog is the read side of core.Service used by the handlers.
type Catalog interface {
	Search(ctx context.Context, text string) []core.ProductRecord
	Snapshot() core.Snapshot
	LastLoad() *core.LoadResult
}

// ReportRenderer builds the HTML report for a snapshot.
type ReportRenderer interface {
	Component(snap core.Snapshot) templ.Component
}

// Server is the HTTP query server. The catalog must be fully loaded before
// Start is called; handlers only read it.
type Server struct {
	catalog Catalog
	report  ReportRenderer
	cfg     config.ServerConfig
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a server with middleware and routes configured.
func NewServer(catalog Catalog, report ReportRenderer, cfg config.ServerConfig) *Server {
	s := &Server{
		catalog: catalog,
		report:  report,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(pricemw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	if len(s.cfg.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/report", s.handleReport)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/files", s.handleFiles)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
