// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// runDump prints an rc file, either verbatim (re-encoded from the
// parsed document) or resolved against registry defaults and the
// LINTRC_* environment with --effective.
func runDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var format string
	var effective bool
	fs.StringVar(&file, "file", "", "path to the rc file")
	fs.StringVar(&file, "f", "", "path to the rc file (shorthand)")
	fs.StringVar(&format, "format", lintconf.FormatINI, "output format: ini, json or yaml")
	fs.BoolVar(&effective, "effective", false, "dump the resolved configuration (defaults + file + env)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	file = strings.TrimSpace(file)
	if file == "" && !effective {
		fmt.Fprintln(stderr, "Error: --file is required")
		return 2
	}
	format = strings.ToLower(strings.TrimSpace(format))

	var out []byte
	if effective {
		resolver := lintconf.NewResolver(file)
		snap, err := resolver.Resolve()
		if err != nil {
			fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", file, err)
			return 1
		}
		out, err = lintconf.Render(snap, format)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	} else {
		doc, err := rcfile.ParseFile(file)
		if err != nil {
			fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", file, err)
			return 1
		}
		out, err = lintconf.RenderDocument(doc, format)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	_, _ = stdout.Write(out)
	return 0
}
