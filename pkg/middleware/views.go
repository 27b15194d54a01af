package middleware

import (
	"context"
	"net/http"

	"github.com/vango-dev/tagkit/pkg/capture"
	"github.com/vango-dev/tagkit/pkg/tags"
)

// viewKey is the request context key of the per-request View.
type viewKey struct{}

// Views creates middleware that gives every request its own output buffer
// and a buffered View over it. Markup streamed into the buffer is written to
// the response after the handler returns. renderer is called once per
// request, so a swapped renderer applies to the next request.
func Views(renderer func() *tags.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := capture.NewBuffer()
			v := renderer().View(capture.NewBuffered(buf))

			next.ServeHTTP(w, r.WithContext(WithView(r.Context(), v)))

			if buf.Len() > 0 {
				_, _ = buf.WriteTo(w)
			}
		})
	}
}

// WithView returns a copy of ctx carrying v.
func WithView(ctx context.Context, v *tags.View) context.Context {
	return context.WithValue(ctx, viewKey{}, v)
}

// ViewFromContext returns the View installed by Views.
func ViewFromContext(ctx context.Context) (*tags.View, bool) {
	v, ok := ctx.Value(viewKey{}).(*tags.View)
	return v, ok && v != nil
}
