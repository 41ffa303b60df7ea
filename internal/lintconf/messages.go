// SPDX-License-Identifier: MIT

package lintconf

import (
	"sort"
	"strings"
)

// Message is one diagnosable finding the configured linters can emit.
type Message struct {
	ID          string // e.g. "C0114"
	Symbol      string // e.g. "missing-module-docstring"
	Description string
}

// Category returns the single-letter message category (C, W, E, R, F).
func (m Message) Category() string {
	if m.ID == "" {
		return ""
	}
	return m.ID[:1]
}

// messageCatalog lists the built-in messages the enable/disable lists
// resolve against. IDs and symbols mirror the upstream checker set.
var messageCatalog = []Message{
	{ID: "C0103", Symbol: "invalid-name", Description: "Name doesn't conform to the configured naming style"},
	{ID: "C0112", Symbol: "empty-docstring", Description: "Docstring is empty"},
	{ID: "C0114", Symbol: "missing-module-docstring", Description: "Module is missing a docstring"},
	{ID: "C0115", Symbol: "missing-class-docstring", Description: "Class is missing a docstring"},
	{ID: "C0116", Symbol: "missing-function-docstring", Description: "Function or method is missing a docstring"},
	{ID: "C0301", Symbol: "line-too-long", Description: "Line exceeds max-line-length"},
	{ID: "C0302", Symbol: "too-many-lines", Description: "Module exceeds max-module-lines"},
	{ID: "C0303", Symbol: "trailing-whitespace", Description: "Trailing whitespace at end of line"},
	{ID: "C0304", Symbol: "missing-final-newline", Description: "Final newline missing"},
	{ID: "C0411", Symbol: "wrong-import-order", Description: "Imports are not grouped and ordered correctly"},
	{ID: "C0413", Symbol: "wrong-import-position", Description: "Import not at top of module"},
	{ID: "W0102", Symbol: "dangerous-default-value", Description: "Mutable default argument"},
	{ID: "W0105", Symbol: "pointless-string-statement", Description: "String statement has no effect"},
	{ID: "W0201", Symbol: "attribute-defined-outside-init", Description: "Attribute defined outside __init__"},
	{ID: "W0212", Symbol: "protected-access", Description: "Access to a protected member from outside the class"},
	{ID: "W0511", Symbol: "fixme", Description: "Comment matches one of the configured note tags"},
	{ID: "W0611", Symbol: "unused-import", Description: "Imported name is never used"},
	{ID: "W0612", Symbol: "unused-variable", Description: "Variable is assigned but never used"},
	{ID: "W0613", Symbol: "unused-argument", Description: "Function argument is never used"},
	{ID: "W0703", Symbol: "broad-except", Description: "Catching too general an exception"},
	{ID: "E0001", Symbol: "syntax-error", Description: "Source could not be parsed"},
	{ID: "E0102", Symbol: "function-redefined", Description: "Function or method redefined"},
	{ID: "E0602", Symbol: "undefined-variable", Description: "Use of an undefined name"},
	{ID: "E1101", Symbol: "no-member", Description: "Accessed member does not exist"},
	{ID: "E1120", Symbol: "no-value-for-parameter", Description: "Required parameter missing from call"},
	{ID: "R0201", Symbol: "no-self-use", Description: "Method could be a function"},
	{ID: "R0801", Symbol: "duplicate-code", Description: "Similar lines across files exceed min-similarity-lines"},
	{ID: "R0902", Symbol: "too-many-instance-attributes", Description: "Class exceeds max-attributes"},
	{ID: "R0903", Symbol: "too-few-public-methods", Description: "Class is below min-public-methods"},
	{ID: "R0912", Symbol: "too-many-branches", Description: "Function exceeds max-branches"},
	{ID: "R0913", Symbol: "too-many-arguments", Description: "Function exceeds max-args"},
	{ID: "R0914", Symbol: "too-many-locals", Description: "Function exceeds max-locals"},
	{ID: "R0915", Symbol: "too-many-statements", Description: "Function exceeds max-statements"},
	{ID: "F0001", Symbol: "fatal", Description: "Checker failed on this module"},
	{ID: "F0010", Symbol: "parse-error", Description: "Configuration for this module could not be parsed"},
}

// Catalog returns the built-in message catalog sorted by ID.
func Catalog() []Message {
	out := make([]Message, len(messageCatalog))
	copy(out, messageCatalog)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LookupMessage finds a catalog message by ID or symbol,
// case-insensitively for IDs.
func LookupMessage(token string) (Message, bool) {
	upper := strings.ToUpper(token)
	lower := strings.ToLower(token)
	for _, m := range messageCatalog {
		if m.ID == upper || m.Symbol == lower {
			return m, true
		}
	}
	return Message{}, false
}

// MessageMatrix is the resolved enabled/disabled state of every catalog
// message under a snapshot's disable and enable lists.
type MessageMatrix struct {
	enabled map[string]bool
	unknown []string
}

// ResolveMessages applies the MESSAGES CONTROL lists to the catalog.
// Every message starts enabled; the disable list is applied first, then
// the enable list, so enable always wins for the same message. Tokens
// may be message IDs, symbols, category letters, or the wildcards
// "all" and "*".
func ResolveMessages(s *Snapshot) *MessageMatrix {
	m := &MessageMatrix{enabled: make(map[string]bool, len(messageCatalog))}
	for _, msg := range messageCatalog {
		m.enabled[msg.ID] = true
	}

	m.apply(s.GetList("MESSAGES CONTROL", "disable"), false)
	m.apply(s.GetList("MESSAGES CONTROL", "enable"), true)

	return m
}

func (m *MessageMatrix) apply(tokens []string, state bool) {
	for _, token := range tokens {
		switch {
		case token == "*" || strings.EqualFold(token, "all"):
			for id := range m.enabled {
				m.enabled[id] = state
			}
		case isCategoryToken(token):
			prefix := strings.ToUpper(token)
			for id := range m.enabled {
				if strings.HasPrefix(id, prefix) {
					m.enabled[id] = state
				}
			}
		default:
			if msg, ok := LookupMessage(token); ok {
				m.enabled[msg.ID] = state
			} else {
				m.unknown = append(m.unknown, token)
			}
		}
	}
}

func isCategoryToken(token string) bool {
	if len(token) != 1 {
		return false
	}
	switch strings.ToUpper(token) {
	case "C", "W", "E", "R", "F":
		return true
	}
	return false
}

// IsEnabled reports whether the message (by ID or symbol) is enabled.
// Unknown messages report enabled; suppressing something the catalog
// does not know would hide real findings.
func (m *MessageMatrix) IsEnabled(token string) bool {
	msg, ok := LookupMessage(token)
	if !ok {
		return true
	}
	return m.enabled[msg.ID]
}

// Enabled returns the enabled message IDs, sorted.
func (m *MessageMatrix) Enabled() []string {
	return m.collect(true)
}

// Disabled returns the disabled message IDs, sorted.
func (m *MessageMatrix) Disabled() []string {
	return m.collect(false)
}

// Unknown returns list tokens that matched nothing in the catalog.
func (m *MessageMatrix) Unknown() []string {
	out := make([]string, len(m.unknown))
	copy(out, m.unknown)
	return out
}

func (m *MessageMatrix) collect(state bool) []string {
	var out []string
	for id, enabled := range m.enabled {
		if enabled == state {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
