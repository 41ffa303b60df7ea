// SPDX-License-Identifier: MIT

package middleware

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// StackConfig configures the canonical HTTP ingress middleware stack.
// Keeping the assembly in one place prevents drift in cross-cutting
// concerns when new routes are added.
type StackConfig struct {
	// Observability
	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool

	// Rate limiting
	EnableRateLimit   bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter constructs a chi router with the canonical middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Metrics (track all requests)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	// 4. Tracing (distributed tracing with OpenTelemetry)
	if cfg.TracingService != "" {
		r.Use(OTelHTTP(cfg.TracingService))
	}
	// 5. Logging (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(Logging())
	}
	// 6. Rate limit (per-client protection)
	if cfg.EnableRateLimit {
		r.Use(RateLimit(RateLimitConfig{
			RequestLimit: cfg.RateLimitRequests,
			WindowSize:   cfg.RateLimitWindow,
		}))
	}
}
