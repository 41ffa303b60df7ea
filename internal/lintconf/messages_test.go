// SPDX-License-Identifier: MIT

package lintconf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func resolveWith(t *testing.T, disable, enable string) *MessageMatrix {
	t.Helper()
	r := NewResolver("")
	r.Override("MESSAGES CONTROL", "disable", disable)
	r.Override("MESSAGES CONTROL", "enable", enable)
	snap, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return ResolveMessages(snap)
}

func TestResolveMessagesDefaultAllEnabled(t *testing.T) {
	m := resolveWith(t, "", "")
	if got := m.Disabled(); len(got) != 0 {
		t.Errorf("Disabled() = %v, want none", got)
	}
	if !m.IsEnabled("C0114") {
		t.Error("C0114 should start enabled")
	}
}

func TestResolveMessagesDisableByID(t *testing.T) {
	m := resolveWith(t, "C0114, C0115", "")
	if got := m.Disabled(); !cmp.Equal(got, []string{"C0114", "C0115"}) {
		t.Errorf("Disabled() = %v, want [C0114 C0115]", got)
	}
	if m.IsEnabled("missing-module-docstring") {
		t.Error("symbol lookup should see C0114 disabled")
	}
}

func TestResolveMessagesDisableBySymbol(t *testing.T) {
	m := resolveWith(t, "unused-import,fixme", "")
	if m.IsEnabled("W0611") || m.IsEnabled("W0511") {
		t.Error("symbols must disable their message IDs")
	}
	if !m.IsEnabled("W0612") {
		t.Error("unrelated messages must stay enabled")
	}
}

func TestResolveMessagesEnableWinsAfterDisable(t *testing.T) {
	m := resolveWith(t, "all", "C0114,unused-import")
	if !m.IsEnabled("C0114") || !m.IsEnabled("W0611") {
		t.Error("enable list must win over a prior disable")
	}
	if m.IsEnabled("E0602") {
		t.Error("messages not re-enabled must stay disabled")
	}
}

func TestResolveMessagesWildcards(t *testing.T) {
	for _, token := range []string{"all", "ALL", "*"} {
		m := resolveWith(t, token, "")
		if got := m.Enabled(); len(got) != 0 {
			t.Errorf("disable=%q left enabled: %v", token, got)
		}
	}
}

func TestResolveMessagesCategory(t *testing.T) {
	m := resolveWith(t, "C", "")
	if m.IsEnabled("C0114") || m.IsEnabled("C0301") {
		t.Error("category C must disable every C message")
	}
	if !m.IsEnabled("W0611") || !m.IsEnabled("E0602") {
		t.Error("other categories must stay enabled")
	}

	m = resolveWith(t, "all", "w")
	if !m.IsEnabled("W0611") {
		t.Error("lowercase category token must re-enable W messages")
	}
	if m.IsEnabled("C0114") {
		t.Error("C messages must stay disabled")
	}
}

func TestResolveMessagesUnknownTokens(t *testing.T) {
	m := resolveWith(t, "X9999,no-such-symbol", "")
	if got := m.Unknown(); !cmp.Equal(got, []string{"X9999", "no-such-symbol"}) {
		t.Errorf("Unknown() = %v", got)
	}
	// Unknown tokens must not disable anything.
	if got := m.Disabled(); len(got) != 0 {
		t.Errorf("Disabled() = %v, want none", got)
	}
	// Unknown messages report enabled rather than silently suppressed.
	if !m.IsEnabled("X9999") {
		t.Error("IsEnabled on unknown message should be true")
	}
}

func TestCatalogSortedAndUnique(t *testing.T) {
	catalog := Catalog()
	if len(catalog) == 0 {
		t.Fatal("catalog is empty")
	}

	seenID := make(map[string]struct{})
	seenSymbol := make(map[string]struct{})
	prev := ""
	for _, m := range catalog {
		if m.ID <= prev {
			t.Errorf("catalog not sorted at %s", m.ID)
		}
		prev = m.ID
		if _, dup := seenID[m.ID]; dup {
			t.Errorf("duplicate ID %s", m.ID)
		}
		if _, dup := seenSymbol[m.Symbol]; dup {
			t.Errorf("duplicate symbol %s", m.Symbol)
		}
		seenID[m.ID] = struct{}{}
		seenSymbol[m.Symbol] = struct{}{}

		if got := m.Category(); got != "C" && got != "W" && got != "E" && got != "R" && got != "F" {
			t.Errorf("%s has unexpected category %q", m.ID, got)
		}
	}
}

func TestLookupMessage(t *testing.T) {
	if m, ok := LookupMessage("c0114"); !ok || m.Symbol != "missing-module-docstring" {
		t.Errorf("LookupMessage(c0114) = %+v,%v", m, ok)
	}
	if m, ok := LookupMessage("unused-import"); !ok || m.ID != "W0611" {
		t.Errorf("LookupMessage(unused-import) = %+v,%v", m, ok)
	}
	if _, ok := LookupMessage("nope"); ok {
		t.Error("LookupMessage(nope) should miss")
	}
}
