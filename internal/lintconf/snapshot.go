// SPDX-License-Identifier: MIT

package lintconf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// Origin identifies which precedence layer supplied an effective value.
type Origin string

const (
	OriginDefault  Origin = "default"
	OriginFile     Origin = "file"
	OriginEnv      Origin = "env"
	OriginOverride Origin = "override"
)

// Warning is a non-fatal finding from resolving a configuration, such as
// a deprecated or unknown option.
type Warning struct {
	Section string
	Option  string
	Line    int // 0 when the finding is not tied to a file line
	Message string
}

// Snapshot is the immutable, effective lint configuration: registry
// defaults overlaid with the rc file, LINTRC_* environment variables, and
// explicit overrides. Snapshots are safe for concurrent readers.
type Snapshot struct {
	path        string
	loadedAt    time.Time
	doc         *rcfile.Document
	values      map[string]string
	origins     map[string]Origin
	order       []string
	warnings    []Warning
	fingerprint string
}

// Path returns the rc file the snapshot was resolved from, or an empty
// string for a defaults-only snapshot.
func (s *Snapshot) Path() string { return s.path }

// LoadedAt returns when the snapshot was resolved.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Document returns the parsed rc file behind this snapshot, or nil when
// the snapshot was resolved without a file.
func (s *Snapshot) Document() *rcfile.Document { return s.doc }

// Warnings returns the non-fatal findings collected during resolution.
func (s *Snapshot) Warnings() []Warning {
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Fingerprint returns the hex SHA-256 of the effective configuration.
func (s *Snapshot) Fingerprint() string { return s.fingerprint }

// Origin reports which layer supplied the effective value for
// section/option.
func (s *Snapshot) Origin(section, option string) (Origin, bool) {
	o, ok := s.origins[optionKey(section, option)]
	return o, ok
}

// Lookup returns the effective raw value and whether it is present.
func (s *Snapshot) Lookup(section, option string) (string, bool) {
	v, ok := s.values[optionKey(section, option)]
	return v, ok
}

// Get returns the effective raw value, or def when absent. It never
// fails; unknown sections and options simply fall back to def.
func (s *Snapshot) Get(section, option, def string) string {
	if v, ok := s.Lookup(section, option); ok {
		return v
	}
	return def
}

// GetList splits the effective value on commas, trimming elements and
// dropping empties. Absent options yield an empty list.
func (s *Snapshot) GetList(section, option string) []string {
	v, ok := s.Lookup(section, option)
	if !ok {
		return []string{}
	}
	return rcfile.SplitList(v)
}

// GetBool interprets the effective value as a boolean, returning def for
// absent options and an error wrapping rcfile.ErrInvalidBool for
// unparsable literals.
func (s *Snapshot) GetBool(section, option string, def bool) (bool, error) {
	v, ok := s.Lookup(section, option)
	if !ok {
		return def, nil
	}
	b, err := rcfile.ParseBool(v)
	if err != nil {
		return def, err
	}
	return b, nil
}

// GetInt interprets the effective value as a decimal integer.
func (s *Snapshot) GetInt(section, option string, def int) (int, error) {
	v, ok := s.Lookup(section, option)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%w: %q", rcfile.ErrInvalidInt, v)
	}
	return n, nil
}

// GetRegexp compiles the effective value, unquoting it first. Absent or
// empty values return nil without error.
func (s *Snapshot) GetRegexp(section, option string) (*regexp.Regexp, error) {
	v, ok := s.Lookup(section, option)
	if !ok || v == "" {
		return nil, nil
	}
	return regexp.Compile(rcfile.Unquote(v))
}

// EffectiveDocument renders the snapshot as an rc document: registry
// options in declaration order, then any unknown file options in file
// order.
func (s *Snapshot) EffectiveDocument() *rcfile.Document {
	b := rcfile.NewBuilder()
	for _, key := range s.order {
		section, option, ok := strings.Cut(key, "/")
		if !ok {
			continue
		}
		b.Section(section).Set(option, s.values[key])
	}
	return b.Build()
}

// Encode renders the effective configuration as rc text.
func (s *Snapshot) Encode() []byte {
	return s.EffectiveDocument().Encode()
}

func optionKey(section, option string) string {
	return section + "/" + strings.ToLower(strings.TrimSpace(option))
}
