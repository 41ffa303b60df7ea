// SPDX-License-Identifier: MIT

// Package rcfile parses INI-style lint configuration files into an
// immutable document model and provides typed lookups on it.
//
// A document is built once by Parse and never mutated afterwards, so it
// can be shared across any number of concurrent readers without locking.
package rcfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Document is an ordered collection of sections. Section names are unique
// within a document; duplicate headers in the input merge into the section
// at its first position.
type Document struct {
	source   string
	sections []*Section
	index    map[string]*Section
}

// Section is a named group of options. Keys are unique within a section
// (duplicates overwrite, last write wins) and keep first-seen order.
type Section struct {
	name   string
	keys   []string
	values map[string]string
	lines  map[string]int
	line   int
}

// Name returns the section name exactly as written in the header.
func (s *Section) Name() string { return s.name }

// Line returns the 1-based line number of the section's first header.
func (s *Section) Line() int { return s.line }

// Keys returns the option keys in first-seen order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Value returns the raw value for key and whether it is present.
// Keys are matched case-insensitively (they are lowercased on parse).
func (s *Section) Value(key string) (string, bool) {
	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// OptionLine returns the line number where key was last assigned.
func (s *Section) OptionLine(key string) (int, bool) {
	n, ok := s.lines[normalizeKey(key)]
	return n, ok
}

// Source returns the file name the document was parsed from, or an empty
// string for in-memory input.
func (d *Document) Source() string { return d.source }

// SectionNames returns the section names in document order.
func (d *Document) SectionNames() []string {
	out := make([]string, len(d.sections))
	for i, s := range d.sections {
		out[i] = s.name
	}
	return out
}

// Sections returns the sections in document order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Section returns the named section, or nil when absent. Section names are
// case-sensitive, matching the header verbatim.
func (d *Document) Section(name string) *Section {
	return d.index[name]
}

// HasSection reports whether the named section exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Has reports whether section contains key.
func (d *Document) Has(section, key string) bool {
	_, ok := d.Lookup(section, key)
	return ok
}

// Lookup returns the raw value for section/key and whether it is present.
func (d *Document) Lookup(section, key string) (string, bool) {
	s := d.index[section]
	if s == nil {
		return "", false
	}
	return s.Value(key)
}

// Get returns the raw value for section/key, or def when the section or
// the key is absent. It never fails.
func (d *Document) Get(section, key, def string) string {
	if v, ok := d.Lookup(section, key); ok {
		return v
	}
	return def
}

// GetList splits a comma-separated value into its elements, trimming
// surrounding whitespace (including the newlines left by continuation
// lines) and dropping empty elements. An absent key or an empty value
// yields an empty list.
func (d *Document) GetList(section, key string) []string {
	v, ok := d.Lookup(section, key)
	if !ok {
		return []string{}
	}
	return SplitList(v)
}

// GetBool interprets the value as a boolean: yes/true/1/on are true,
// no/false/0/off are false, case-insensitively. An absent key returns def.
// Any other literal returns def together with an error wrapping
// ErrInvalidBool.
func (d *Document) GetBool(section, key string, def bool) (bool, error) {
	v, ok := d.Lookup(section, key)
	if !ok {
		return def, nil
	}
	b, err := ParseBool(v)
	if err != nil {
		return def, err
	}
	return b, nil
}

// GetInt interprets the value as a decimal integer. An absent key returns
// def; a non-numeric value returns def together with an error wrapping
// ErrInvalidInt.
func (d *Document) GetInt(section, key string, def int) (int, error) {
	v, ok := d.Lookup(section, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%w: %q", ErrInvalidInt, v)
	}
	return n, nil
}

// GetRegexp compiles the value as a regular expression. An absent key or
// an empty value returns nil without error.
func (d *Document) GetRegexp(section, key string) (*regexp.Regexp, error) {
	v, ok := d.Lookup(section, key)
	if !ok || v == "" {
		return nil, nil
	}
	re, err := regexp.Compile(v)
	if err != nil {
		return nil, fmt.Errorf("option %s.%s: %w", section, key, err)
	}
	return re, nil
}

// ParseBool converts a boolean literal the way the consuming linters do:
// yes/true/1/on and no/false/0/off, case-insensitive, surrounding
// whitespace ignored.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBool, s)
	}
}

// SplitList splits a comma-separated value, trimming whitespace per
// element and dropping empties.
func SplitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Unquote removes one pair of matching single or double quotes around a
// value. Lint rc files quote whitespace-significant values such as
// indent-string; the quotes are not part of the value.
func Unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
