// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render?format=svg|png|pdf|json   body: TOML or JSON spec
//	GET  /v1/healthz
//	GET  /v1/version
//
// Render accepts the query parameters unit, title, strict and
// annotations, mirroring the CLI flags. Errors are JSON objects of the
// form {"error": {"code": "...", "message": "..."}}.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fencedraw/pkg/pipeline"
)

// DefaultMaxBodySize bounds spec uploads.
const DefaultMaxBodySize = 1 << 20

// DefaultShutdownTimeout is how long Serve waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Server serves diagrams rendered by a shared [pipeline.Runner].
type Server struct {
	runner      *pipeline.Runner
	logger      *log.Logger
	maxBodySize int64
	router      chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxBodySize overrides [DefaultMaxBodySize].
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:      runner,
		logger:      logger,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(s.logRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", s.handle(s.healthz))
		r.Get("/version", s.handle(s.version))
		r.Post("/render", s.handle(s.render))
	})

	r.NotFound(s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return httpErrorf(http.StatusNotFound, "NOT_FOUND", "no route for %s %s", r.Method, r.URL.Path)
	}))
	r.MethodNotAllowed(s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return httpErrorf(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "%s not allowed on %s", r.Method, r.URL.Path)
	}))
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps s in an [http.Server] with conservative timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Handler:           s,
		MaxHeaderBytes:    1 << 18,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       5 * time.Minute,
		ErrorLog:          s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}
}

// Serve runs hs on l until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, shutdownTimeout time.Duration, hs *http.Server, l net.Listener) error {
	hs.BaseContext = func(net.Listener) context.Context { return ctx }

	done := make(chan error, 1)
	go func() {
		done <- hs.Serve(l)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(ctx)
	}
}
