// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// runMessages resolves the enable/disable lists of an rc file against
// the built-in message catalog and prints the resulting state.
func runMessages(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc messages", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to the rc file")
	fs.StringVar(&file, "f", "", "path to the rc file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	resolver := lintconf.NewResolver(strings.TrimSpace(file))
	snap, err := resolver.Resolve()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", file, err)
		return 1
	}

	matrix := lintconf.ResolveMessages(snap)
	printMessageGroup(stdout, "enabled", matrix.Enabled())
	printMessageGroup(stdout, "disabled", matrix.Disabled())
	if unknown := matrix.Unknown(); len(unknown) > 0 {
		fmt.Fprintf(stdout, "unknown tokens: %s\n", strings.Join(unknown, ", "))
	}
	return 0
}

func printMessageGroup(w io.Writer, label string, ids []string) {
	fmt.Fprintf(w, "%s (%d):\n", label, len(ids))
	for _, id := range ids {
		if msg, ok := lintconf.LookupMessage(id); ok {
			fmt.Fprintf(w, "  %s  %s\n", msg.ID, msg.Symbol)
		} else {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}
