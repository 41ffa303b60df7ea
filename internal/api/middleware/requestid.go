// SPDX-License-Identifier: MIT

// Package middleware provides the canonical HTTP ingress middleware
// stack for the API server: panic recovery, request correlation,
// metrics, tracing, request logging, and per-client rate limiting.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ssbarnea/lintrc/internal/log"
)

// HeaderRequestID is the header carrying the request correlation ID.
// Inbound values are echoed back; absent ones are generated.
const HeaderRequestID = "X-Request-ID"

// RequestID adds a unique ID to every request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, reqID)
		ctx := log.ContextWithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
