// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid host and port", "127.0.0.1:8080", false},
		{"empty host", ":8080", false},
		{"named port", "localhost:http", false},
		{"empty", "", true},
		{"missing port", "localhost", true},
		{"bad port", "localhost:notaport", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("listen", tt.value)
			if got := !v.IsValid(); got != tt.wantErr {
				t.Errorf("ListenAddr(%q) error = %v, wantErr %v", tt.value, got, tt.wantErr)
			}
		})
	}
}

func TestValidator_Port(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid low", 1, false},
		{"valid high", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too high", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Port("port", tt.port)
			if got := !v.IsValid(); got != tt.wantErr {
				t.Errorf("Port(%d) error = %v, wantErr %v", tt.port, got, tt.wantErr)
			}
		})
	}
}

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name            string
		value, min, max int
		wantErr         bool
	}{
		{"inside", 5, 1, 10, false},
		{"at min", 1, 1, 10, false},
		{"at max", 10, 1, 10, false},
		{"below", 0, 1, 10, true},
		{"above", 11, 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("value", tt.value, tt.min, tt.max)
			if got := !v.IsValid(); got != tt.wantErr {
				t.Errorf("Range(%d, %d, %d) error = %v, wantErr %v", tt.value, tt.min, tt.max, got, tt.wantErr)
			}
		})
	}
}

func TestValidator_Regexp(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"valid naming pattern", `^[a-z_][a-z0-9_]{2,30}$`, false},
		{"empty allowed", "", false},
		{"unclosed group", `(abc`, true},
		{"invalid class", `[z-a]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Regexp("rgx", tt.pattern)
			if got := !v.IsValid(); got != tt.wantErr {
				t.Errorf("Regexp(%q) error = %v, wantErr %v", tt.pattern, got, tt.wantErr)
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("backend", "badger", []string{"memory", "badger", "sqlite"})
	if !v.IsValid() {
		t.Errorf("expected badger to be allowed, got %v", v.Err())
	}

	v = New()
	v.OneOf("backend", "etcd", []string{"memory", "badger", "sqlite"})
	if v.IsValid() {
		t.Error("expected etcd to be rejected")
	}
}

func TestValidator_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pylintrc")
	if err := os.WriteFile(path, []byte("[FORMAT]\n"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	v := New()
	v.File("rc_path", path)
	if !v.IsValid() {
		t.Errorf("expected existing file to validate, got %v", v.Err())
	}

	v = New()
	v.File("rc_path", filepath.Join(dir, "missing"))
	if v.IsValid() {
		t.Error("expected missing file to fail")
	}

	v = New()
	v.File("rc_path", dir)
	if v.IsValid() {
		t.Error("expected directory to fail file check")
	}

	v = New()
	v.File("rc_path", "")
	if v.IsValid() {
		t.Error("expected empty path to fail")
	}
}

func TestValidator_Directory(t *testing.T) {
	dir := t.TempDir()

	v := New()
	v.Directory("data_dir", dir, true)
	if !v.IsValid() {
		t.Errorf("expected existing directory to validate, got %v", v.Err())
	}

	v = New()
	v.Directory("data_dir", filepath.Join(dir, "sub", "created"), false)
	if !v.IsValid() {
		t.Errorf("expected creatable directory to validate, got %v", v.Err())
	}

	v = New()
	v.Directory("data_dir", filepath.Join(dir, "nope"), true)
	if v.IsValid() {
		t.Error("expected missing directory with mustExist to fail")
	}

	v = New()
	v.Directory("data_dir", "../escape", true)
	if v.IsValid() {
		t.Error("expected traversal path to fail")
	}
}

func TestValidator_PositiveDuration(t *testing.T) {
	v := New()
	v.PositiveDuration("debounce", 500*time.Millisecond)
	if !v.IsValid() {
		t.Errorf("expected positive duration to validate, got %v", v.Err())
	}

	v = New()
	v.PositiveDuration("debounce", 0)
	if v.IsValid() {
		t.Error("expected zero duration to fail")
	}
}

func TestValidator_AccumulatesErrors(t *testing.T) {
	v := New()
	v.Port("port", -1)
	v.NotEmpty("name", "  ")
	v.NonNegative("keep", -5)

	if v.IsValid() {
		t.Fatal("expected validator to be invalid")
	}
	if len(v.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(v.Errors()))
	}

	err := v.Err()
	if err == nil {
		t.Fatal("expected non-nil error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors()) != 3 {
		t.Errorf("expected 3 bundled errors, got %d", len(verr.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

func TestValidator_ErrNilWhenValid(t *testing.T) {
	v := New()
	v.Port("port", 8080)
	if err := v.Err(); err != nil {
		t.Errorf("expected nil error for valid input, got %v", err)
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("jobs", 0, func(value interface{}) error {
		if value.(int) == 0 {
			return errors.New("jobs must not be zero")
		}
		return nil
	})
	if v.IsValid() {
		t.Error("expected custom check to fail")
	}
}
