// SPDX-License-Identifier: MIT

package lintconf

import (
	"fmt"
	"sync"
)

// Kind defines how an option's raw string value is interpreted.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
	KindRegexp Kind = "regexp"
)

// Status defines the lifecycle state of a configuration option.
type Status string

const (
	StatusActive     Status = "Active"
	StatusDeprecated Status = "Deprecated"
	StatusRemoved    Status = "Removed"
)

// Entry defines a single configuration option's metadata.
type Entry struct {
	Section    string // Section header, e.g. "MESSAGES CONTROL"
	Option     string // Option key, e.g. "disable"
	Kind       Kind
	Default    string // Default value in rc syntax
	Env        string // Environment variable override, e.g. "LINTRC_JOBS"
	Status     Status
	ReplacedBy string // Successor option for deprecated entries
	Since      string // Version the deprecation was announced in
	Help       string
}

// Key returns the canonical "SECTION/option" registry key.
func (e Entry) Key() string {
	return e.Section + "/" + e.Option
}

// Registry is the inventory of every known configuration option.
type Registry struct {
	Entries []Entry // declaration order
	ByKey   map[string]Entry
	ByEnv   map[string]Entry
}

var (
	globalRegistry    *Registry
	globalRegistryErr error
	registryOnce      sync.Once
)

// GetRegistry returns the global option registry. It returns an error if
// the registry contains duplicate keys or env names. Thread-safe via
// sync.Once.
func GetRegistry() (*Registry, error) {
	registryOnce.Do(func() {
		globalRegistry, globalRegistryErr = buildRegistry(optionEntries())
	})
	return globalRegistry, globalRegistryErr
}

func buildRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{
		Entries: entries,
		ByKey:   make(map[string]Entry, len(entries)),
		ByEnv:   make(map[string]Entry),
	}

	for _, e := range entries {
		if e.Section == "" || e.Option == "" {
			return nil, fmt.Errorf("registry entry without section/option: %+v", e)
		}
		key := e.Key()
		if _, dup := r.ByKey[key]; dup {
			return nil, fmt.Errorf("duplicate registry key: %s", key)
		}
		r.ByKey[key] = e
		if e.Env != "" {
			if _, dup := r.ByEnv[e.Env]; dup {
				return nil, fmt.Errorf("duplicate registry env: %s", e.Env)
			}
			r.ByEnv[e.Env] = e
		}
	}

	return r, nil
}

// Lookup returns the entry for section/option. Option keys are matched
// in their lowercased parse form.
func (r *Registry) Lookup(section, option string) (Entry, bool) {
	e, ok := r.ByKey[section+"/"+option]
	return e, ok
}

// Sections returns the distinct section names in declaration order.
func (r *Registry) Sections() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range r.Entries {
		if _, ok := seen[e.Section]; ok {
			continue
		}
		seen[e.Section] = struct{}{}
		out = append(out, e.Section)
	}
	return out
}

// SectionEntries returns the entries of one section in declaration order.
func (r *Registry) SectionEntries(section string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Section == section {
			out = append(out, e)
		}
	}
	return out
}

// Deprecated returns all entries whose status is not Active, in
// declaration order.
func (r *Registry) Deprecated() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Status != StatusActive {
			out = append(out, e)
		}
	}
	return out
}
