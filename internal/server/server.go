// Package server exposes pseudoknot conversion over HTTP.
//
// # Endpoints
//
//   - POST /v1/convert: convert a BPSEQ or dot-bracket structure
//   - GET /v1/resolvers: list strategies, selectors and defaults
//   - GET /healthz: liveness and build version
//
// Requests go through the same [pipeline.Runner] as the CLI, so results
// and cache keys match across entry points. Failures are returned as JSON
// bodies of the form {"code": "...", "message": "..."}; input and
// configuration errors map to 400, everything else to 500.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/knotwork/pkg/pipeline"
)

const (
	// maxBodyBytes caps the size of a request body.
	maxBodyBytes = 4 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the conversion API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/resolvers", s.handleResolvers)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
