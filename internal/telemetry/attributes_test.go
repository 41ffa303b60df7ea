// SPDX-License-Identifier: MIT
package telemetry

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestHTTPAttributes(t *testing.T) {
	attrs := HTTPAttributes("GET", "/api/v1/config", "http://localhost:8090/api/v1/config", 200)

	if len(attrs) != 4 {
		t.Fatalf("Expected 4 attributes, got %d", len(attrs))
	}

	verifyAttribute(t, attrs, HTTPMethodKey, "GET")
	verifyAttribute(t, attrs, HTTPRouteKey, "/api/v1/config")
	verifyAttribute(t, attrs, HTTPURLKey, "http://localhost:8090/api/v1/config")
	verifyIntAttribute(t, attrs, HTTPStatusCodeKey, 200)
}

func TestReloadAttributes(t *testing.T) {
	attrs := ReloadAttributes("watch", "success", 3)

	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}

	verifyAttribute(t, attrs, ReloadTriggerKey, "watch")
	verifyAttribute(t, attrs, ReloadOutcomeKey, "success")
	verifyIntAttribute(t, attrs, ReloadChangedKey, 3)
}

func TestSnapshotAttributes(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		fingerprint string
		wantLen     int
	}{
		{
			name:        "all fields",
			path:        "/etc/lintrc",
			fingerprint: "deadbeef",
			wantLen:     4,
		},
		{
			name:        "only path",
			path:        "/etc/lintrc",
			fingerprint: "",
			wantLen:     3,
		},
		{
			name:        "defaults only",
			path:        "",
			fingerprint: "",
			wantLen:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := SnapshotAttributes(tt.path, tt.fingerprint, 5, 1)

			if len(attrs) != tt.wantLen {
				t.Errorf("Expected %d attributes, got %d", tt.wantLen, len(attrs))
			}

			if tt.path != "" {
				verifyAttribute(t, attrs, SnapshotPathKey, tt.path)
			}
			if tt.fingerprint != "" {
				verifyAttribute(t, attrs, SnapshotFingerprintKey, tt.fingerprint)
			}
			verifyIntAttribute(t, attrs, SnapshotSectionsKey, 5)
			verifyIntAttribute(t, attrs, SnapshotWarningsKey, 1)
		})
	}
}

func TestRevisionAttributes(t *testing.T) {
	attrs := RevisionAttributes("sqlite", "api", 42)

	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}

	verifyAttribute(t, attrs, RevisionBackendKey, "sqlite")
	verifyAttribute(t, attrs, RevisionSourceKey, "api")
	verifyInt64Attribute(t, attrs, RevisionSeqKey, 42)
}

func TestRenderAttributes(t *testing.T) {
	attrs := RenderAttributes("json", true)

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}

	verifyAttribute(t, attrs, RenderFormatKey, "json")
	verifyBoolAttribute(t, attrs, RenderCacheHitKey, true)
}

func TestErrorAttributes(t *testing.T) {
	err := errors.New("test error")
	attrs := ErrorAttributes(err, "parse_error")

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}

	verifyBoolAttribute(t, attrs, ErrorKey, true)
	verifyAttribute(t, attrs, ErrorTypeKey, "parse_error")
}

func TestAttributeKeys_Consistency(t *testing.T) {
	// Attribute keys must be non-empty dotted names.
	keys := []string{
		HTTPMethodKey,
		HTTPStatusCodeKey,
		HTTPRouteKey,
		ReloadTriggerKey,
		SnapshotPathKey,
		RevisionBackendKey,
		RenderFormatKey,
		ErrorKey,
	}

	for _, key := range keys {
		if key == "" {
			t.Errorf("Expected non-empty attribute key")
		}
	}
}

// Helper functions for attribute verification

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key, expectedValue string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != expectedValue {
				t.Errorf("Expected %s=%s, got %s", key, expectedValue, attr.Value.AsString())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyIntAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsInt64() != int64(expectedValue) {
				t.Errorf("Expected %s=%d, got %d", key, expectedValue, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyInt64Attribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int64) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsInt64() != expectedValue {
				t.Errorf("Expected %s=%d, got %d", key, expectedValue, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyBoolAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue bool) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsBool() != expectedValue {
				t.Errorf("Expected %s=%t, got %t", key, expectedValue, attr.Value.AsBool())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
