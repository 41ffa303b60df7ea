// SPDX-License-Identifier: MIT

package lintconf

import (
	"strconv"
	"strings"

	"github.com/ssbarnea/lintrc/internal/rcfile"
	"github.com/ssbarnea/lintrc/internal/validate"
)

var confidenceLevels = []string{"HIGH", "CONTROL_FLOW", "INFERENCE", "INFERENCE_FAILURE", "UNDEFINED"}

// validateSnapshot type-checks every registry-known effective value.
// Unknown options pass through unchecked; they may belong to plugins.
func validateSnapshot(reg *Registry, s *Snapshot) error {
	v := validate.New()

	for _, e := range reg.Entries {
		raw, ok := s.Lookup(e.Section, e.Option)
		if !ok {
			continue
		}
		field := e.Key()

		switch e.Kind {
		case KindInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				v.AddError(field, "must be an integer", raw)
				continue
			}
			checkIntBounds(v, field, e.Option, n)
		case KindBool:
			if _, err := rcfile.ParseBool(raw); err != nil {
				v.AddError(field, "must be one of yes/no/true/false/1/0/on/off", raw)
			}
		case KindRegexp:
			if raw != "" {
				v.Regexp(field, rcfile.Unquote(raw))
			}
		}

		switch field {
		case "FORMAT/expected-line-ending-format":
			if raw != "" {
				v.OneOf(field, raw, []string{"LF", "CRLF"})
			}
		case "MESSAGES CONTROL/confidence":
			for _, c := range rcfile.SplitList(raw) {
				v.OneOf(field, c, confidenceLevels)
			}
		}
	}

	return v.Err()
}

func checkIntBounds(v *validate.Validator, field, option string, n int) {
	switch option {
	case "jobs", "limit-inference-results":
		v.NonNegative(field, n)
	case "max-line-length", "max-module-lines", "indent-after-paren", "min-similarity-lines":
		v.Positive(field, n)
	case "max-args", "max-locals", "max-returns", "max-branches", "max-statements",
		"max-parents", "max-attributes", "min-public-methods", "max-public-methods", "max-bool-expr":
		v.NonNegative(field, n)
	case "docstring-min-length":
		// -1 disables the length requirement.
		if n < -1 {
			v.AddError(field, "must be -1 or a non-negative length", n)
		}
	}
}
