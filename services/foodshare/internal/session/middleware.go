package session

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const viewerContextKey contextKey = "viewer"

// Loader reads the viewer for a request.
type Loader interface {
	Load(r *http.Request) Viewer
}

// Middleware reads the viewer fresh on every request and stores it in the
// request context. It never rejects a request; views decide what an
// anonymous viewer sees.
func Middleware(store Loader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithViewer(r.Context(), store.Load(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerContextKey, v)
}

// FromContext returns the viewer stored by Middleware, or an anonymous
// viewer when there is none.
func FromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerContextKey).(Viewer)
	return v
}
