// Package middleware provides HTTP middleware and observers for serving
// tagkit markup.
//
// This package includes:
//   - Prometheus metrics for rendered tags, captures and requests
//   - OpenTelemetry request tracing
//   - Per-request Views backed by their own output buffer
//
// # Prometheus Metrics
//
// Metrics implements tags.Observer and also wraps HTTP handlers:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	r := tags.NewRenderer(tags.WithObserver(m))
//
//	router.Use(m.Handler)
//	router.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry Middleware
//
// Tracing starts one server span per request. The span is available to
// handlers through SpanFromContext:
//
//	router.Use(middleware.Tracing(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Views
//
// Views allocates an output buffer per request and installs a buffered
// View in the request context. Tags built around template blocks stream
// into that buffer, which is flushed to the response after the handler:
//
//	router.Use(middleware.Views(func() *tags.Renderer { return r }))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    v, _ := middleware.ViewFromContext(r.Context())
//	    v.Tag("ul", capture.TemplateBlock(func() (string, error) { ... }))
//	}
package middleware
