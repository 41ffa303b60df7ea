// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// runInit writes the registry defaults as a fresh rc file. The write
// is atomic; an existing file is only replaced with --force.
func runInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var out string
	var force bool
	fs.StringVar(&out, "out", "", "path to write the rc file to")
	fs.StringVar(&out, "o", "", "path to write the rc file to (shorthand)")
	fs.BoolVar(&force, "force", false, "overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	out = strings.TrimSpace(out)
	if out == "" {
		fmt.Fprintln(stderr, "Error: --out is required")
		return 2
	}

	if _, err := os.Stat(out); err == nil && !force {
		fmt.Fprintf(stderr, "Error: %s already exists (use --force to overwrite)\n", out)
		return 2
	}

	doc, err := lintconf.DefaultDocument()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := lintconf.WriteDocument(out, doc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(stdout, "✓ wrote %s\n", out)
	return 0
}
