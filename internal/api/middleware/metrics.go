// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ssbarnea/lintrc/internal/metrics"
)

// Metrics records request count and latency per chi route pattern. The
// pattern, not the raw path, keeps label cardinality bounded.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			metrics.RecordHTTPRequest(route, r.Method, ww.Status(), time.Since(start))
		})
	}
}
