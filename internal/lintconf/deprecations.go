// SPDX-License-Identifier: MIT

package lintconf

import (
	"fmt"
	"strings"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/metrics"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// checkDeprecations scans a parsed document for options the registry
// marks Deprecated or Removed, logs a structured warning for each, and
// bumps the deprecation counter. Deprecated options stay functional;
// Removed ones are dropped by the resolver.
func checkDeprecations(reg *Registry, doc *rcfile.Document) []Warning {
	var warnings []Warning

	for _, sec := range doc.Sections() {
		for _, opt := range sec.Keys() {
			entry, ok := reg.Lookup(sec.Name(), opt)
			if !ok || entry.Status == StatusActive {
				continue
			}

			line, _ := sec.OptionLine(opt)
			warnings = append(warnings, Warning{
				Section: sec.Name(),
				Option:  opt,
				Line:    line,
				Message: deprecationMessage(entry),
			})
			LogDeprecationWarning(entry)
			metrics.RecordDeprecatedOption(entry.Section, entry.Option)
		}
	}

	return warnings
}

// LogDeprecationWarning logs a structured warning for a deprecated option.
func LogDeprecationWarning(e Entry) {
	logger := log.WithComponent("lintconf")
	logger.Warn().
		Str("event", "lintconf.option_deprecated").
		Str(log.FieldSection, e.Section).
		Str(log.FieldOption, e.Option).
		Str("status", string(e.Status)).
		Str("replaced_by", e.ReplacedBy).
		Str("since", e.Since).
		Msg(deprecationMessage(e))
}

func deprecationMessage(e Entry) string {
	var b strings.Builder
	switch e.Status {
	case StatusRemoved:
		fmt.Fprintf(&b, "option %q was removed", e.Option)
	default:
		fmt.Fprintf(&b, "option %q is deprecated", e.Option)
	}
	if e.Since != "" {
		fmt.Fprintf(&b, " since %s", e.Since)
	}
	if e.ReplacedBy != "" {
		fmt.Fprintf(&b, ", use %q instead", e.ReplacedBy)
	}
	return b.String()
}

// DeprecationSummary returns a human-readable list of every deprecated
// or removed option the registry knows about.
func DeprecationSummary(reg *Registry) string {
	deprecated := reg.Deprecated()
	if len(deprecated) == 0 {
		return "No deprecated configuration options"
	}

	var b strings.Builder
	b.WriteString("Deprecated configuration options:\n")
	for _, e := range deprecated {
		fmt.Fprintf(&b, "  - [%s] %s\n", e.Section, deprecationMessage(e))
	}
	return b.String()
}
