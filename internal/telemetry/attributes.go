// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the daemon.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	// Reload attributes
	ReloadTriggerKey = "reload.trigger"
	ReloadOutcomeKey = "reload.outcome"
	ReloadChangedKey = "reload.changed_options"

	// Snapshot attributes
	SnapshotPathKey        = "snapshot.path"
	SnapshotFingerprintKey = "snapshot.fingerprint"
	SnapshotSectionsKey    = "snapshot.sections"
	SnapshotWarningsKey    = "snapshot.warnings"

	// Revision attributes
	RevisionBackendKey = "revision.backend"
	RevisionSeqKey     = "revision.seq"
	RevisionSourceKey  = "revision.source"

	// Render attributes
	RenderFormatKey   = "render.format"
	RenderCacheHitKey = "render.cache_hit"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// ReloadAttributes creates reload-related span attributes.
func ReloadAttributes(trigger, outcome string, changedOptions int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ReloadTriggerKey, trigger),
		attribute.String(ReloadOutcomeKey, outcome),
		attribute.Int(ReloadChangedKey, changedOptions),
	}
}

// SnapshotAttributes creates snapshot-related span attributes. Empty
// fields are omitted.
func SnapshotAttributes(path, fingerprint string, sections, warnings int) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	if path != "" {
		attrs = append(attrs, attribute.String(SnapshotPathKey, path))
	}
	if fingerprint != "" {
		attrs = append(attrs, attribute.String(SnapshotFingerprintKey, fingerprint))
	}
	attrs = append(attrs,
		attribute.Int(SnapshotSectionsKey, sections),
		attribute.Int(SnapshotWarningsKey, warnings),
	)
	return attrs
}

// RevisionAttributes creates revision-related span attributes.
func RevisionAttributes(backend, source string, seq uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RevisionBackendKey, backend),
		attribute.String(RevisionSourceKey, source),
		attribute.Int64(RevisionSeqKey, int64(seq)),
	}
}

// RenderAttributes creates render-related span attributes.
func RenderAttributes(format string, cacheHit bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RenderFormatKey, format),
		attribute.Bool(RenderCacheHitKey, cacheHit),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
