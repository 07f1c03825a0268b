package middleware

import (
	"net/http"

	"ideagraph-backend/pkg/observability"
)

// Tracing wraps each request in an X-Ray segment. A no-op when tracing
// is disabled.
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, done := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			defer done()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
