// SPDX-License-Identifier: MIT

package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/ssbarnea/lintrc/internal/log"
)

// Recoverer ensures that panics inside any downstream handler do not
// crash the process. It logs the panic with context and returns a 500 JSON.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				buf := make([]byte, 8192)
				n := runtime.Stack(buf, false)
				stack := string(buf[:n])

				reqID := log.RequestIDFromContext(r.Context())

				pathLabel := r.URL.Path
				if !utf8.ValidString(pathLabel) {
					pathLabel = strings.ToValidUTF8(pathLabel, "")
				}

				logger := log.WithComponentFromContext(r.Context(), "panic-recovery")
				logger.Error().
					Str("event", "panic.recovered").
					Str("method", r.Method).
					Str("path", pathLabel).
					Str("remote_addr", r.RemoteAddr).
					Interface("panic_value", rec).
					Str("stack_trace", stack).
					Msg("panic recovered in HTTP handler")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":     "internal server error",
					"requestId": reqID,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
