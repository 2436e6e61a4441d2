// Package server exposes compliance scoring and format adaptation over HTTP.
//
// Routes:
//
//	GET  /health                              liveness and version
//	GET  /api/formats                         registered export formats
//	POST /api/compliance/validate             score a scene
//	POST /api/creative/validate-compliance    same, for editor clients
//	POST /api/creative/adapt                  adapt a scene to formats
//	POST /api/creative/upload-image           ingest a multipart "image"
//
// Errors are JSON objects {"success": false, "error": ..., "code": ...}.
// Validation failures map to 400, unknown assets to 404, unsupported
// media to 415 and oversized bodies to 413.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "creativeforge"

// Request limits.
const (
	DefaultMaxBodyBytes   = 2 << 20
	DefaultMaxUploadBytes = pipeline.DefaultMaxAssetBytes
	shutdownTimeout       = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Guidelines apply when a request carries none.
	Guidelines compliance.Guidelines
	// Ingestor stores uploads. Upload requests fail with 415 when nil.
	Ingestor       pipeline.AssetIngestor
	Logger         *log.Logger
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

// Server serves the HTTP API on top of a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
}

// New creates a server. Zero limits take their defaults.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = runner.Logger
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	opts.Guidelines = opts.Guidelines.WithDefaults()
	return &Server{runner: runner, opts: opts, logger: opts.Logger}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(s.observe(r))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/compliance/validate", s.handleValidate)
		r.Post("/creative/validate-compliance", s.handleValidate)
		r.Post("/creative/adapt", s.handleAdapt)
		r.Post("/creative/upload-image", s.handleUpload)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found", Code: "NOT_FOUND"})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
