// Package server implements the HTTP API: on-demand rendering plus CRUD for
// saved clouds.
//
// Routes:
//
//	GET  /healthz                  liveness probe with build info
//	POST /api/render               render a word list without saving it
//	GET  /api/clouds               list saved clouds
//	POST /api/clouds               save a cloud
//	GET  /api/clouds/{id}          fetch a saved cloud
//	PUT  /api/clouds/{id}          update a saved cloud
//	DELETE /api/clouds/{id}        delete a saved cloud
//	GET  /api/clouds/{id}/render   render a saved cloud
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the clouds endpoints' backing
// storage and is replaced by an in-memory store; a nil logger logs nowhere.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Routes builds the chi router with the full middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/clouds", func(r chi.Router) {
			r.Get("/", s.handleListClouds)
			r.Post("/", s.handleCreateCloud)
			r.Get("/{id}", s.handleGetCloud)
			r.Put("/{id}", s.handleUpdateCloud)
			r.Delete("/{id}", s.handleDeleteCloud)
			r.Get("/{id}/render", s.handleRenderCloud)
		})
	})

	return r
}

// ListenAndServe starts the server with sane timeouts.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
