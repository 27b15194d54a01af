package middleware

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/pkg/capture"
	"github.com/vango-dev/tagkit/pkg/tags"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "tagkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the request duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "tagkit",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Metrics records rendering and request metrics. It implements
// tags.Observer, so it can be passed to tags.WithObserver.
type Metrics struct {
	tagsRendered    *prometheus.CounterVec
	tagBytes        prometheus.Histogram
	captures        *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ tags.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the metrics.
//
// Metrics collected:
//   - tagkit_tags_rendered_total: Counter of built tags by shape
//   - tagkit_tag_bytes: Histogram of markup size per tag
//   - tagkit_captures_total: Counter of block captures by context and status
//   - tagkit_http_requests_total: Counter of requests by route and status code
//   - tagkit_http_request_duration_seconds: Histogram of request duration by route
//
// Registering twice with the same registry panics; tests should pass their
// own registry with WithRegistry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		tagsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tags_rendered_total",
			Help:        "Total number of tags built",
			ConstLabels: config.ConstLabels,
		}, []string{"shape"}),

		tagBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tag_bytes",
			Help:        "Size of the markup built per tag in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(16, 4, 8), // 16B to 256KB
		}),

		captures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "captures_total",
			Help:        "Total number of block captures",
			ConstLabels: config.ConstLabels,
		}, []string{"context", "status"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of preview requests",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "Preview request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// TagRendered records a built tag.
func (m *Metrics) TagRendered(_ string, shape tags.Shape, size int) {
	m.tagsRendered.WithLabelValues(shape.String()).Inc()
	m.tagBytes.Observe(float64(size))
}

// CaptureFinished records a block capture.
func (m *Metrics) CaptureFinished(kind capture.Kind, err error) {
	status := "success"
	if err != nil {
		status = categorizeError(err)
	}
	m.captures.WithLabelValues(kind.String(), status).Inc()
}

// Handler returns HTTP middleware recording request count and duration.
// The route label is the chi route pattern, so it stays low-cardinality.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(statusOf(ww))).Inc()
	})
}

// categorizeError returns a low-cardinality label for a capture error.
func categorizeError(err error) string {
	var te *errors.TagkitError
	if stderrors.As(err, &te) && te.Code != "" {
		return strings.ToLower(te.Code)
	}
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline"):
		return "timeout"
	case strings.Contains(errStr, "canceled"):
		return "canceled"
	default:
		return "error"
	}
}

// routePattern returns the matched chi route pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
