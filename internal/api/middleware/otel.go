// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// OTelHTTP wraps the handler with OpenTelemetry HTTP instrumentation.
// Spans are created for all requests except health and metrics probes,
// and trace context from inbound headers is propagated.
func OTelHTTP(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			next,
			serviceName,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
			otelhttp.WithFilter(shouldTrace),
			otelhttp.WithSpanNameFormatter(spanNameFormatter),
		)
	}
}

// shouldTrace skips health and metrics endpoints to reduce noise.
func shouldTrace(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return true
}

// spanNameFormatter names spans "{operation} {path}". Query values are
// collapsed to a bare "?" so parameters never leak into span names.
func spanNameFormatter(operation string, r *http.Request) string {
	if r.URL.RawQuery != "" {
		return operation + " " + r.URL.Path + "?"
	}
	return operation + " " + r.URL.Path
}
