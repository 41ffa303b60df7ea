// SPDX-License-Identifier: MIT

package lintconf

import (
	"testing"
)

func resolveText(t *testing.T, content string) *Snapshot {
	t.Helper()
	snap, err := NewResolver(writeRC(t, content)).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return snap
}

func findChange(summary ChangeSummary, key string) (Change, bool) {
	for _, c := range summary.Changes {
		if c.Key() == key {
			return c, true
		}
	}
	return Change{}, false
}

func TestDiffNoChanges(t *testing.T) {
	a := resolveText(t, "[MASTER]\njobs=4\n")
	b := resolveText(t, "[MASTER]\njobs=4\n")

	summary, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !summary.Empty() {
		t.Errorf("changes = %v, want none", summary.Keys())
	}
}

func TestDiffModifiedValue(t *testing.T) {
	a := resolveText(t, "[MASTER]\njobs=4\n")
	b := resolveText(t, "[MASTER]\njobs=8\n")

	summary, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	c, ok := findChange(summary, "MASTER/jobs")
	if !ok {
		t.Fatalf("changes = %v, want MASTER/jobs", summary.Keys())
	}
	if c.Old != "4" || c.New != "8" {
		t.Errorf("change = %+v", c)
	}
	if c.OldOrigin != OriginFile || c.NewOrigin != OriginFile {
		t.Errorf("origins = %q -> %q, want file -> file", c.OldOrigin, c.NewOrigin)
	}
}

func TestDiffOriginChangeIsAChange(t *testing.T) {
	a := resolveText(t, "[MASTER]\njobs=1\n")
	b := resolveText(t, "[FORMAT]\nmax-line-length=100\n")

	// jobs: file "1" -> default "1". Same value, so not a change.
	summary, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if _, ok := findChange(summary, "MASTER/jobs"); ok {
		t.Error("equal values from different origins must not be a change")
	}
}

func TestDiffListReorderIsNotAChange(t *testing.T) {
	a := resolveText(t, "[BASIC]\ngood-names=i,j,k\n")
	b := resolveText(t, "[BASIC]\ngood-names=k, i, j\n")

	summary, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if _, ok := findChange(summary, "BASIC/good-names"); ok {
		t.Error("reordered list must compare equal")
	}

	c := resolveText(t, "[BASIC]\ngood-names=i,j\n")
	summary, err = Diff(a, c)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if _, ok := findChange(summary, "BASIC/good-names"); !ok {
		t.Error("removing a list element must be a change")
	}
}

func TestDiffAddedUnknownOption(t *testing.T) {
	a := resolveText(t, "[MASTER]\njobs=4\n")
	b := resolveText(t, "[MASTER]\njobs=4\nplugin-knob=7\n")

	summary, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	c, ok := findChange(summary, "MASTER/plugin-knob")
	if !ok {
		t.Fatalf("changes = %v, want MASTER/plugin-knob", summary.Keys())
	}
	if c.Old != "" || c.New != "7" {
		t.Errorf("change = %+v, want appearance", c)
	}
	if c.OldOrigin != "" || c.NewOrigin != OriginFile {
		t.Errorf("origins = %q -> %q", c.OldOrigin, c.NewOrigin)
	}
}
