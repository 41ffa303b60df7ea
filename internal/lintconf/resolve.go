// SPDX-License-Identifier: MIT

package lintconf

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// Resolver builds effective snapshots with precedence:
// registry defaults < rc file < LINTRC_* environment < explicit overrides.
type Resolver struct {
	rcPath    string
	overrides []override
	skipEnv   bool
	logger    zerolog.Logger

	// ConsumedEnvKeys tracks every environment variable the resolver
	// read, for surfacing stale LINTRC_* vars in diagnostics.
	ConsumedEnvKeys map[string]struct{}
}

type override struct {
	section string
	option  string
	value   string
}

// NewResolver creates a resolver for the given rc path. An empty path
// resolves defaults plus environment only.
func NewResolver(rcPath string) *Resolver {
	return &Resolver{
		rcPath:          rcPath,
		logger:          log.WithComponent("lintconf"),
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Override pins section/option to value at the highest precedence layer.
// Later overrides of the same option win.
func (r *Resolver) Override(section, option, value string) {
	r.overrides = append(r.overrides, override{section: section, option: option, value: value})
}

// SkipEnvironment disables the environment layer. Validation of
// submitted documents uses this so the daemon's own LINTRC_* variables
// do not leak into the report.
func (r *Resolver) SkipEnvironment() {
	r.skipEnv = true
}

// Resolve parses the rc file (when configured) and builds a validated
// snapshot. Parse and validation failures leave no partial state behind;
// callers keep whatever snapshot they already had.
func (r *Resolver) Resolve() (*Snapshot, error) {
	var doc *rcfile.Document
	if r.rcPath != "" {
		var err error
		doc, err = rcfile.ParseFile(r.rcPath)
		if err != nil {
			return nil, err
		}
	}

	snap, err := r.ResolveDocument(doc)
	if err != nil {
		return nil, err
	}
	snap.path = r.rcPath
	return snap, nil
}

// ResolveDocument builds a snapshot from an already parsed document. A
// nil document resolves defaults, environment, and overrides only.
func (r *Resolver) ResolveDocument(doc *rcfile.Document) (*Snapshot, error) {
	reg, err := GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("option registry: %w", err)
	}

	snap := &Snapshot{
		loadedAt: time.Now().UTC(),
		doc:      doc,
		values:   make(map[string]string),
		origins:  make(map[string]Origin),
	}

	// 1. Registry defaults.
	for _, e := range reg.Entries {
		if e.Status != StatusActive {
			continue
		}
		key := e.Key()
		snap.values[key] = e.Default
		snap.origins[key] = OriginDefault
	}

	// 2. File values, including options the registry does not know.
	if doc != nil {
		snap.warnings = checkDeprecations(reg, doc)
		for _, sec := range doc.Sections() {
			for _, opt := range sec.Keys() {
				entry, known := reg.Lookup(sec.Name(), opt)
				if known && entry.Status == StatusRemoved {
					continue
				}
				if !known {
					line, _ := sec.OptionLine(opt)
					snap.warnings = append(snap.warnings, Warning{
						Section: sec.Name(),
						Option:  opt,
						Line:    line,
						Message: "unknown option, passed through unvalidated",
					})
				}
				v, _ := sec.Value(opt)
				key := optionKey(sec.Name(), opt)
				snap.values[key] = v
				snap.origins[key] = OriginFile
			}
		}
	}

	// 3. Environment overrides, highest to none but explicit overrides.
	if !r.skipEnv {
		for _, e := range reg.Entries {
			if e.Env == "" {
				continue
			}
			r.ConsumedEnvKeys[e.Env] = struct{}{}
			v, ok := os.LookupEnv(e.Env)
			if !ok {
				continue
			}
			key := e.Key()
			snap.values[key] = v
			snap.origins[key] = OriginEnv
		}
	}

	// 4. Explicit overrides, in the order they were registered.
	for _, o := range r.overrides {
		key := optionKey(o.section, o.option)
		snap.values[key] = o.value
		snap.origins[key] = OriginOverride
	}

	// 5. Typed validation over the merged result.
	if err := validateSnapshot(reg, snap); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	snap.order = effectiveOrder(reg, doc, snap.values)
	snap.fingerprint = snap.EffectiveDocument().Fingerprint()

	for _, w := range snap.warnings {
		r.logger.Warn().
			Str("event", "lintconf.option_warning").
			Str(log.FieldSection, w.Section).
			Str(log.FieldOption, w.Option).
			Int("line", w.Line).
			Msg(w.Message)
	}
	r.logger.Debug().
		Str("event", "lintconf.resolved").
		Str(log.FieldFingerprint, snap.fingerprint).
		Int("options", len(snap.values)).
		Int("warnings", len(snap.warnings)).
		Msg("configuration resolved")

	return snap, nil
}

// effectiveOrder lists effective option keys: registry declaration order
// first, then unknown file options in file order.
func effectiveOrder(reg *Registry, doc *rcfile.Document, values map[string]string) []string {
	seen := make(map[string]struct{}, len(values))
	order := make([]string, 0, len(values))

	for _, e := range reg.Entries {
		key := e.Key()
		if _, ok := values[key]; !ok {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}
	if doc != nil {
		for _, sec := range doc.Sections() {
			for _, opt := range sec.Keys() {
				key := optionKey(sec.Name(), opt)
				if _, ok := values[key]; !ok {
					continue
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				order = append(order, key)
			}
		}
	}
	return order
}
