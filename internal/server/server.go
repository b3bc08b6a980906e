// Package server implements the HTTP preview server.
//
// The server exposes composition rendering and the gallery over a small
// JSON/image API. Rendering goes through [pipeline.Runner], which builds a
// fresh pipeline per request, so handlers are safe to run concurrently
// without serializing on a shared random stream.
//
// # Endpoints
//
//	GET    /healthz                   liveness probe
//	GET    /api/layers                layer registry metadata
//	GET    /api/render                render a composition from query params
//	GET    /api/gallery               list saved entries
//	POST   /api/gallery               generate and save a composition
//	GET    /api/gallery/{id}          fetch one entry as JSON
//	GET    /api/gallery/{id}/render   re-render a saved entry
//	DELETE /api/gallery/{id}          delete an entry
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pixelczar/tangle-map/pkg/gallery"
	"github.com/pixelczar/tangle-map/pkg/observability"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// Config holds server configuration.
type Config struct {
	Addr string // listen address, e.g. ":8080"
}

// Server wires the runner and gallery into an HTTP API.
type Server struct {
	router  *chi.Mux
	runner  *pipeline.Runner
	gallery gallery.Store
	logger  *log.Logger
}

// New creates a server. The gallery store may be nil, which disables the
// gallery endpoints with 404s.
func New(runner *pipeline.Runner, store gallery.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:  chi.NewRouter(),
		runner:  runner,
		gallery: store,
		logger:  logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.observe)
}

// observe reports request events to the registered server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/layers", s.handleLayers)
	s.router.Get("/api/render", s.handleRender)

	if s.gallery != nil {
		s.router.Route("/api/gallery", func(r chi.Router) {
			r.Get("/", s.handleGalleryList)
			r.Post("/", s.handleGallerySave)
			r.Get("/{id}", s.handleGalleryGet)
			r.Get("/{id}/render", s.handleGalleryRender)
			r.Delete("/{id}", s.handleGalleryDelete)
		})
	}
}
