package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing_StoresTraceContext(t *testing.T) {
	var (
		span    trace.Span
		traceCx context.Context
		reqCtx  context.Context
	)

	router := chi.NewRouter()
	router.Use(Tracing(
		WithTracerName("tagkit-test"),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	router.Get("/tags/{name}", func(w http.ResponseWriter, r *http.Request) {
		reqCtx = r.Context()
		span = SpanFromContext(reqCtx)
		traceCx = TraceContext(reqCtx)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tags/div", nil))

	if span == nil {
		t.Fatal("expected SpanFromContext to return a span during the request")
	}
	stored, ok := reqCtx.Value(spanContextKey{}).(context.Context)
	if !ok || stored == nil {
		t.Fatalf("expected span context to be stored on the request, got %T", reqCtx.Value(spanContextKey{}))
	}
	if traceCx != stored {
		t.Fatal("expected TraceContext to return the stored span context")
	}
	_ = trace.SpanContextFromContext(traceCx) // Should not panic
}

func TestTracing_ServerErrorStillServes(t *testing.T) {
	called := false
	h := Tracing()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if SpanFromContext(r.Context()) == nil {
			t.Error("expected a span on the request context")
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", nil))

	if !called {
		t.Fatal("expected next handler to be called")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
}

func TestTracing_FilterSkipsTracing(t *testing.T) {
	nextCalled := false
	h := Tracing(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if SpanFromContext(r.Context()) != nil {
			t.Error("expected filtered request to carry no span")
		}
		if TraceContext(r.Context()) != r.Context() {
			t.Error("expected TraceContext to fall back to the request context")
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !nextCalled {
		t.Fatal("expected next handler to be called")
	}
}

func TestSpanFromContext_Missing(t *testing.T) {
	if SpanFromContext(context.Background()) != nil {
		t.Fatal("expected nil span for a bare context")
	}
}

func TestFormatSpanName(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	if got := formatSpanName(req); got != "GET /tables" {
		t.Fatalf("formatSpanName()=%q, want %q", got, "GET /tables")
	}
}
