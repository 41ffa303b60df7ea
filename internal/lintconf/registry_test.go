// SPDX-License-Identifier: MIT

package lintconf

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/ssbarnea/lintrc/internal/rcfile"
)

func TestGetRegistry(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}
	if len(reg.Entries) == 0 {
		t.Fatal("registry is empty")
	}

	again, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry second call: %v", err)
	}
	if reg != again {
		t.Error("GetRegistry must return the same instance")
	}
}

func TestRegistryDefaultsAreWellTyped(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}

	for _, e := range reg.Entries {
		e := e
		t.Run(e.Key(), func(t *testing.T) {
			switch e.Kind {
			case KindInt:
				if _, err := strconv.Atoi(e.Default); err != nil {
					t.Errorf("default %q does not parse as int", e.Default)
				}
			case KindBool:
				if _, err := rcfile.ParseBool(e.Default); err != nil {
					t.Errorf("default %q does not parse as bool", e.Default)
				}
			case KindRegexp:
				if e.Default == "" {
					return
				}
				if _, err := regexp.Compile(rcfile.Unquote(e.Default)); err != nil {
					t.Errorf("default %q does not compile: %v", e.Default, err)
				}
			case KindString, KindList:
				// Any string is fine.
			default:
				t.Errorf("entry has unexpected kind %q", e.Kind)
			}
		})
	}
}

func TestRegistryOptionKeysAreLowercase(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}
	for _, e := range reg.Entries {
		if e.Option != strings.ToLower(e.Option) {
			t.Errorf("option %q must be declared in its lowercased parse form", e.Key())
		}
	}
}

func TestBuildRegistryRejectsDuplicates(t *testing.T) {
	_, err := buildRegistry([]Entry{
		{Section: "MASTER", Option: "jobs", Kind: KindInt},
		{Section: "MASTER", Option: "jobs", Kind: KindInt},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate registry key") {
		t.Errorf("err = %v, want duplicate key error", err)
	}

	_, err = buildRegistry([]Entry{
		{Section: "MASTER", Option: "jobs", Kind: KindInt, Env: "LINTRC_X"},
		{Section: "FORMAT", Option: "max-line-length", Kind: KindInt, Env: "LINTRC_X"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate registry env") {
		t.Errorf("err = %v, want duplicate env error", err)
	}

	_, err = buildRegistry([]Entry{{Option: "jobs"}})
	if err == nil {
		t.Error("entry without section must be rejected")
	}
}

func TestRegistryLookupAndSections(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}

	e, ok := reg.Lookup("MASTER", "jobs")
	if !ok {
		t.Fatal("MASTER/jobs not registered")
	}
	if e.Kind != KindInt || e.Env != "LINTRC_JOBS" {
		t.Errorf("MASTER/jobs entry = %+v", e)
	}

	if _, ok := reg.Lookup("MASTER", "no-such-option"); ok {
		t.Error("unknown option must not resolve")
	}

	sections := reg.Sections()
	if len(sections) == 0 || sections[0] != "MASTER" {
		t.Errorf("sections = %v, want MASTER first", sections)
	}
	seen := make(map[string]struct{})
	for _, s := range sections {
		if _, dup := seen[s]; dup {
			t.Errorf("section %q listed twice", s)
		}
		seen[s] = struct{}{}
	}
}

func TestRegistryDeprecated(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}

	deprecated := reg.Deprecated()
	if len(deprecated) == 0 {
		t.Fatal("expected deprecated entries in the registry")
	}
	for _, e := range deprecated {
		if e.Status == StatusActive {
			t.Errorf("%s listed as deprecated but has active status", e.Key())
		}
	}
}
