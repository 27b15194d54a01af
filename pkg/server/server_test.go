package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/tagkit/internal/config"
	"github.com/vango-dev/tagkit/pkg/tags"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.New()
	for _, m := range mutate {
		m(cfg)
	}
	s, err := New(cfg,
		WithRegistry(prometheus.NewRegistry()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTagEndpoint(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "multi-line with content",
			target: "/tags/div?content=x",
			want:   "<div>\nx\n</div>\n",
		},
		{
			name:   "self-closing with boolean and data",
			target: "/tags/input?type=checkbox&checked=true&data.role=toggle&newline=false",
			want:   `<input checked="checked" data-role="toggle" type="checkbox">`,
		},
		{
			name:   "boolean false is dropped",
			target: "/tags/option?selected=false&value=1&content=One",
			want:   "<option value=\"1\">One</option>\n",
		},
		{
			name:   "repeated classes are merged",
			target: "/tags/p?content=hello&class=a&class=b+a",
			want:   "<p class=\"a b\">hello</p>\n",
		},
		{
			name:   "newline override on single-line tag",
			target: "/tags/span?content=text&newline=true",
			want:   "<span>\ntext\n</span>\n",
		},
		{
			name:   "no content",
			target: "/tags/div",
			want:   "<div>\n</div>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestTagEndpoint_InvalidName(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/tags/1abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "E142", decodeError(t, rec)["code"])
}

func TestRenderEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("nested children stream through the buffer", func(t *testing.T) {
		body := `{"name": "ul", "attrs": {"class": "list"}, "children": [
			{"name": "li", "content": "one"},
			{"name": "li", "content": "two"}
		]}`
		rec := do(t, s, http.MethodPost, "/render", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "<ul class=\"list\">\n<li>one</li>\n<li>two</li>\n</ul>\n", rec.Body.String())
	})

	t.Run("deep nesting", func(t *testing.T) {
		body := `{"name": "section", "attrs": {"id": "intro", "class": "row"}, "children": [
			{"name": "div", "attrs": {"class": "col-md-12"}, "children": [
				{"name": "h1", "content": "Blocks Works too"}
			]}
		]}`
		rec := do(t, s, http.MethodPost, "/render", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		want := "<section class=\"row\" id=\"intro\">\n<div class=\"col-md-12\">\n<h1>Blocks Works too</h1>\n</div>\n</section>\n"
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("leaf is returned directly", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/render", `{"name": "span", "content": "hi"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<span>hi</span>\n", rec.Body.String())
	})

	t.Run("invalid child name", func(t *testing.T) {
		body := `{"name": "ul", "children": [{"name": "li", "content": "ok"}, {"name": ""}]}`
		rec := do(t, s, http.MethodPost, "/render", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		e := decodeError(t, rec)
		assert.Equal(t, "E141", e["code"])
		assert.Contains(t, e["detail"], "root.1")
		assert.NotContains(t, rec.Body.String(), "<li>")
	})

	t.Run("object content", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/render", `{"name": "p", "attrs": {"id": "x"}, "content": {"id": "y"}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		e := decodeError(t, rec)
		assert.Equal(t, "E141", e["code"])
		assert.Contains(t, e["detail"], "root content")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/render", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "E140", decodeError(t, rec)["code"])
	})

	t.Run("too deep", func(t *testing.T) {
		body := strings.Repeat(`{"name":"div","children":[`, MaxDepth+1) + `{"name":"p"}` + strings.Repeat(`]}`, MaxDepth+1)
		rec := do(t, s, http.MethodPost, "/render", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "E140", decodeError(t, rec)["code"])
	})
}

func TestClassesEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/classes", `{"current": "alert", "add": ["alert-info", ["x", "alert"], null]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClassesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alert alert-info x", resp.Class)
}

func TestTablesEndpoint(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Tables.SelfClosing = []string{"wbr"}
	})
	rec := do(t, s, http.MethodGet, "/tables", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var spec tags.TableSpec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Contains(t, spec.SelfClosing, "wbr")
	assert.Contains(t, spec.SelfClosing, "br")
	assert.Contains(t, spec.MultiLine, "div")
	assert.Contains(t, spec.Boolean, "checked")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/tags/p?content=x", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tagkit_tags_rendered_total{shape="single_line"} 1`)
	assert.Contains(t, rec.Body.String(), `tagkit_http_requests_total{code="200",route="/tags/{name}"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Server.Metrics = false
	})
	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTracingEnabled(t *testing.T) {
	cfg := config.New()
	cfg.Server.Tracing = true
	s, err := New(cfg, WithRegistry(prometheus.NewRegistry()), WithTracerProvider(noop.NewTracerProvider()))
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/tags/b?content=bold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<b>bold</b>\n", rec.Body.String())
}

func TestSetRenderer(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/tags/br?newline=false", "")
	assert.Equal(t, "<br>", rec.Body.String())

	s.SetRenderer(tags.NewRenderer(tags.WithXHTML(true)))
	rec = do(t, s, http.MethodGet, "/tags/br?newline=false", "")
	assert.Equal(t, "<br />", rec.Body.String())

	s.SetRenderer(nil)
	assert.True(t, s.Renderer().XHTML(), "nil renderer must be ignored")
}

func TestNewFromConfig(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		s, err := New(nil, WithRegistry(prometheus.NewRegistry()))
		require.NoError(t, err)
		assert.False(t, s.Renderer().XHTML())
		assert.True(t, s.Renderer().AddNewlines())
	})

	t.Run("renderer follows tags section", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) {
			c.Tags.XHTML = true
			c.Tags.AddNewlines = false
		})
		rec := do(t, s, http.MethodGet, "/tags/img?src=a.png", "")
		assert.Equal(t, `<img src="a.png" />`, rec.Body.String())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.New()
		cfg.Server.Port = 70000
		_, err := New(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "E103")
	})

	t.Run("conflicting tables", func(t *testing.T) {
		cfg := config.New()
		cfg.Tables.SingleLine = []string{"br"}
		_, err := New(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "E104")
	})
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
