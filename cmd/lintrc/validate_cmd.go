// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/rcfile"
	"github.com/ssbarnea/lintrc/internal/validate"
)

// runValidate parses and resolves one rc file and reports the verdict.
// The process environment is excluded so the report reflects the file
// alone, matching the daemon's validation endpoint.
func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var strict bool
	fs.StringVar(&file, "file", "", "path to the rc file")
	fs.StringVar(&file, "f", "", "path to the rc file (shorthand)")
	fs.BoolVar(&strict, "strict", false, "treat warnings (unknown or deprecated options) as failures")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	file = strings.TrimSpace(file)
	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		return 2
	}

	doc, err := rcfile.ParseFile(file)
	if err != nil {
		var perr *rcfile.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(stderr, "Parse error in %s:\n  %v\n", file, perr)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	resolver := lintconf.NewResolver("")
	resolver.SkipEnvironment()
	snap, err := resolver.ResolveDocument(doc)
	if err != nil {
		var verr validate.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(stderr, "Validation error in %s:\n", file)
			for _, e := range verr.Errors() {
				fmt.Fprintf(stderr, "  %s: %s (value %q)\n", e.Field, e.Message, fmt.Sprint(e.Value))
			}
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	warnings := snap.Warnings()
	for _, w := range warnings {
		if w.Line > 0 {
			fmt.Fprintf(stderr, "warning: %s/%s (line %d): %s\n", w.Section, w.Option, w.Line, w.Message)
		} else {
			fmt.Fprintf(stderr, "warning: %s/%s: %s\n", w.Section, w.Option, w.Message)
		}
	}
	if strict && len(warnings) > 0 {
		fmt.Fprintf(stderr, "%d warning(s) in strict mode\n", len(warnings))
		return 1
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", file)
	return 0
}
