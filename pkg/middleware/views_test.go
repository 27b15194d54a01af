package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/vango-dev/tagkit/pkg/capture"
	"github.com/vango-dev/tagkit/pkg/tags"
)

func TestViews_StreamsTemplateBlocks(t *testing.T) {
	r := tags.NewRenderer()
	h := Views(func() *tags.Renderer { return r })(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		v, ok := ViewFromContext(req.Context())
		if !ok {
			t.Fatal("expected a view on the request context")
		}
		if v.Context().Kind() != capture.KindBuffered {
			t.Fatalf("context kind=%v, want buffered", v.Context().Kind())
		}
		_, err := v.Tag("ul", tags.Attrs{"class": "list"}, capture.TemplateBlock(func() (string, error) {
			li, err := v.Tag("li", "one")
			if err != nil {
				return "", err
			}
			v.Concat(li)
			return "", nil
		}))
		if err != nil {
			t.Fatalf("Tag() error: %v", err)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := "<ul class=\"list\">\n<li>one</li>\n</ul>\n"
	if got := rec.Body.String(); got != want {
		t.Fatalf("body=%q, want %q", got, want)
	}
}

func TestViews_ReturnedMarkupIsNotFlushed(t *testing.T) {
	r := tags.NewRenderer()
	h := Views(func() *tags.Renderer { return r })(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		v, _ := ViewFromContext(req.Context())
		html, err := v.Tag("p", "text")
		if err != nil {
			t.Fatalf("Tag() error: %v", err)
		}
		if html != "<p>text</p>\n" {
			t.Errorf("Tag()=%q", html)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Body.Len() != 0 {
		t.Fatalf("body=%q, want empty", rec.Body.String())
	}
}

func TestViews_RendererPerRequest(t *testing.T) {
	var xhtml atomic.Bool
	h := Views(func() *tags.Renderer {
		return tags.NewRenderer(tags.WithXHTML(xhtml.Load()))
	})(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		v, _ := ViewFromContext(req.Context())
		html, _ := v.Tag("br", tags.Attrs{"newline": false})
		_, _ = w.Write([]byte(html))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Body.String(); got != "<br>" {
		t.Fatalf("first body=%q, want %q", got, "<br>")
	}

	xhtml.Store(true)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Body.String(); got != "<br />" {
		t.Fatalf("second body=%q, want %q", got, "<br />")
	}
}

func TestViewFromContext_Missing(t *testing.T) {
	if _, ok := ViewFromContext(context.Background()); ok {
		t.Fatal("expected no view on a bare context")
	}
	if _, ok := ViewFromContext(WithView(context.Background(), nil)); ok {
		t.Fatal("expected a nil view to be reported as missing")
	}
}
