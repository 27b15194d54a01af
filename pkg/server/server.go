package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tagkit/internal/config"
	"github.com/vango-dev/tagkit/pkg/middleware"
	"github.com/vango-dev/tagkit/pkg/tags"
)

// Default timeouts for the HTTP server.
const (
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
)

// Server is the tagkit preview server.
type Server struct {
	config *config.Config

	// renderer is swapped by SetRenderer.
	renderer atomic.Pointer[tags.Renderer]

	router   chi.Router
	metrics  *middleware.Metrics
	registry *prometheus.Registry

	tracerProvider  trace.TracerProvider
	shutdownTimeout time.Duration

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the Prometheus registry used for /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracerProvider sets the tracer provider used when tracing is enabled.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New creates a Server from the given configuration. A nil config uses
// the defaults.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config:          cfg,
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Server.Metrics {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	}

	r, err := cfg.Renderer(tags.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.SetRenderer(r)

	s.router = s.routes()
	return s, nil
}

// SetRenderer replaces the renderer used for new requests. When metrics are
// enabled the renderer is derived with the metrics observer attached.
func (s *Server) SetRenderer(r *tags.Renderer) {
	if r == nil {
		return
	}
	if s.metrics != nil {
		r = r.With(tags.WithObserver(s.metrics))
	}
	s.renderer.Store(r)
}

// Renderer returns the current renderer.
func (s *Server) Renderer() *tags.Renderer {
	return s.renderer.Load()
}

// Config returns the configuration the server was created with.
func (s *Server) Config() *config.Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	if s.config.Server.Tracing {
		var opts []middleware.OTelOption
		if s.tracerProvider != nil {
			opts = append(opts, middleware.WithTracerProvider(s.tracerProvider))
		}
		r.Use(middleware.Tracing(opts...))
	}

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Views(s.Renderer))
		r.Get("/tags/{name}", s.handleTag)
		r.Post("/render", s.handleRender)
		r.Post("/classes", s.handleClasses)
		r.Get("/tables", s.handleTables)
	})
	return r
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
