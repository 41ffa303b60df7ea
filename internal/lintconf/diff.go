// SPDX-License-Identifier: MIT

package lintconf

import (
	"sort"
	"strings"

	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// Change describes one option whose effective value differs between two
// snapshots. An empty Old means the option appeared; an empty NewOrigin
// means it disappeared.
type Change struct {
	Section   string
	Option    string
	Old       string
	New       string
	OldOrigin Origin
	NewOrigin Origin
}

// Key returns the canonical "SECTION/option" identifier of the change.
func (c Change) Key() string {
	return c.Section + "/" + c.Option
}

// ChangeSummary describes the result of comparing two snapshots.
type ChangeSummary struct {
	Changes []Change
}

// Empty reports whether the two snapshots were effectively identical.
func (s ChangeSummary) Empty() bool {
	return len(s.Changes) == 0
}

// Keys returns the changed option keys in diff order.
func (s ChangeSummary) Keys() []string {
	out := make([]string, len(s.Changes))
	for i, c := range s.Changes {
		out[i] = c.Key()
	}
	return out
}

// Diff compares two snapshots option by option. List-kind options are
// compared as sets: reordering a comma list is not a change.
func Diff(old, next *Snapshot) (ChangeSummary, error) {
	reg, err := GetRegistry()
	if err != nil {
		return ChangeSummary{}, err
	}

	summary := ChangeSummary{}
	for _, key := range unionKeys(old, next) {
		section, option, ok := strings.Cut(key, "/")
		if !ok {
			continue
		}

		oldVal, oldOK := old.values[key]
		newVal, newOK := next.values[key]
		if oldOK && newOK && equalValues(reg, section, option, oldVal, newVal) {
			continue
		}

		change := Change{Section: section, Option: option, Old: oldVal, New: newVal}
		if oldOK {
			change.OldOrigin = old.origins[key]
		}
		if newOK {
			change.NewOrigin = next.origins[key]
		}
		summary.Changes = append(summary.Changes, change)
	}

	return summary, nil
}

// unionKeys walks the old snapshot's order, then appends keys only the
// new snapshot has, keeping diff output deterministic.
func unionKeys(old, next *Snapshot) []string {
	seen := make(map[string]struct{}, len(old.order))
	keys := make([]string, 0, len(old.order))
	for _, key := range old.order {
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, key := range next.order {
		if _, dup := seen[key]; dup {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func equalValues(reg *Registry, section, option, a, b string) bool {
	if a == b {
		return true
	}
	if entry, ok := reg.Lookup(section, option); ok && entry.Kind == KindList {
		return equalSets(rcfile.SplitList(a), rcfile.SplitList(b))
	}
	return false
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
