// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigReturnsEffectiveSnapshot(t *testing.T) {
	env := newTestEnv(t, "[MASTER]\njobs=4\n\n[FORMAT]\nmax-line-length=120\n")

	rec := env.request(t, http.MethodGet, "/api/v1/config", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON[configResponse](t, rec)
	if resp.Fingerprint == "" {
		t.Error("response must carry the snapshot fingerprint")
	}
	if resp.Path != env.rcPath {
		t.Errorf("path = %q, want %q", resp.Path, env.rcPath)
	}

	byKey := make(map[string]optionEntry, len(resp.Options))
	for _, o := range resp.Options {
		byKey[o.Section+"/"+o.Option] = o
	}

	if got := byKey["MASTER/jobs"]; got.Value != "4" || got.Origin != "file" {
		t.Errorf("MASTER/jobs = %+v, want value 4 from file", got)
	}
	if got := byKey["DESIGN/max-args"]; got.Value != "5" || got.Origin != "default" {
		t.Errorf("DESIGN/max-args = %+v, want default 5", got)
	}
}

func TestConfigReportsWarnings(t *testing.T) {
	env := newTestEnv(t, "[MASTER]\nno-such-option=1\n")

	resp := decodeJSON[configResponse](t, env.request(t, http.MethodGet, "/api/v1/config", nil))
	if len(resp.Warnings) == 0 {
		t.Fatal("unknown option must surface a warning")
	}
	if resp.Warnings[0].Option != "no-such-option" {
		t.Errorf("warning = %+v, want no-such-option", resp.Warnings[0])
	}
}

func TestConfigRawFormats(t *testing.T) {
	env := newTestEnv(t, "[MASTER]\njobs=4\n")

	t.Run("ini default", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/raw", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("Content-Type = %q, want text/plain", ct)
		}
		if !strings.Contains(rec.Body.String(), "jobs=4") {
			t.Errorf("ini body missing jobs=4:\n%s", rec.Body.String())
		}
		if rec.Header().Get("X-Config-Fingerprint") == "" {
			t.Error("raw responses must carry the fingerprint header")
		}
	})

	t.Run("json", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/raw?format=json", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		tree := decodeJSON[map[string]map[string]string](t, rec)
		if tree["MASTER"]["jobs"] != "4" {
			t.Errorf("MASTER/jobs = %q, want 4", tree["MASTER"]["jobs"])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/raw?format=yaml", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var tree map[string]map[string]string
		if err := yaml.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
			t.Fatalf("yaml body does not parse: %v", err)
		}
		if tree["MASTER"]["jobs"] != "4" {
			t.Errorf("MASTER/jobs = %q, want 4", tree["MASTER"]["jobs"])
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/raw?format=toml", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestConfigRawServesFromCache(t *testing.T) {
	env := newTestEnv(t, "[MASTER]\njobs=4\n")

	first := env.request(t, http.MethodGet, "/api/v1/config/raw", nil)
	second := env.request(t, http.MethodGet, "/api/v1/config/raw", nil)

	if first.Body.String() != second.Body.String() {
		t.Error("cached render must match the original")
	}
	stats := env.srv.cache.Stats()
	if stats.Hits == 0 {
		t.Errorf("cache stats = %+v, want at least one hit", stats)
	}
}

func TestSectionLookup(t *testing.T) {
	env := newTestEnv(t, "[MESSAGES CONTROL]\ndisable=C0114\n")

	t.Run("found", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/MESSAGES%20CONTROL", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[sectionResponse](t, rec)
		if resp.Section != "MESSAGES CONTROL" {
			t.Errorf("section = %q", resp.Section)
		}
		found := false
		for _, o := range resp.Options {
			if o.Option == "disable" && o.Value == "C0114" && o.Origin == "file" {
				found = true
			}
		}
		if !found {
			t.Errorf("options missing file-backed disable: %+v", resp.Options)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/format", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeJSON[sectionResponse](t, rec)
		if resp.Section != "FORMAT" {
			t.Errorf("section = %q, want FORMAT", resp.Section)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/NOPE", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestOptionLookupNeverFails(t *testing.T) {
	env := newTestEnv(t, "[MASTER]\njobs=4\n")

	t.Run("present", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/MASTER/jobs", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeJSON[optionResponse](t, rec)
		if !resp.Found || resp.Value != "4" || resp.Origin != "file" {
			t.Errorf("resp = %+v, want found file value 4", resp)
		}
	})

	t.Run("absent with default", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/MASTER/no-such?default=fallback", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (lookups never fail)", rec.Code)
		}
		resp := decodeJSON[optionResponse](t, rec)
		if resp.Found || resp.Value != "fallback" {
			t.Errorf("resp = %+v, want not-found with default", resp)
		}
	})

	t.Run("absent without default", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/api/v1/config/NOWHERE/nothing", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeJSON[optionResponse](t, rec)
		if resp.Found || resp.Value != "" {
			t.Errorf("resp = %+v, want empty not-found", resp)
		}
	})
}

func TestMessagesEndpoint(t *testing.T) {
	env := newTestEnv(t, "[MESSAGES CONTROL]\ndisable=C0114,W9999\n")

	rec := env.request(t, http.MethodGet, "/api/v1/messages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeJSON[messagesResponse](t, rec)

	if !contains(resp.Disabled, "C0114") {
		t.Errorf("disabled = %v, want C0114", resp.Disabled)
	}
	if !contains(resp.Unknown, "W9999") {
		t.Errorf("unknown = %v, want W9999", resp.Unknown)
	}
	if len(resp.Enabled) == 0 {
		t.Error("catalog messages not disabled must be enabled")
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
