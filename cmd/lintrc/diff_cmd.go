// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// runDiff resolves two rc files and prints every option whose
// effective value differs. The environment is excluded on both sides
// so the comparison is between the files, not the caller's shell.
func runDiff(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc diff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var oldPath, newPath string
	fs.StringVar(&oldPath, "a", "", "path to the old rc file")
	fs.StringVar(&newPath, "b", "", "path to the new rc file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	oldPath = strings.TrimSpace(oldPath)
	newPath = strings.TrimSpace(newPath)
	if oldPath == "" || newPath == "" {
		fmt.Fprintln(stderr, "Error: -a and -b are both required")
		return 2
	}

	oldSnap, code := resolveQuiet(oldPath, stderr)
	if code != 0 {
		return code
	}
	newSnap, code := resolveQuiet(newPath, stderr)
	if code != 0 {
		return code
	}

	summary, err := lintconf.Diff(oldSnap, newSnap)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if summary.Empty() {
		fmt.Fprintln(stdout, "no differences")
		return 0
	}
	for _, c := range summary.Changes {
		fmt.Fprintf(stdout, "%s: %q (%s) -> %q (%s)\n", c.Key(), c.Old, c.OldOrigin, c.New, c.NewOrigin)
	}
	return 1
}

func resolveQuiet(path string, stderr io.Writer) (*lintconf.Snapshot, int) {
	resolver := lintconf.NewResolver(path)
	resolver.SkipEnvironment()
	snap, err := resolver.Resolve()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", path, err)
		return nil, 2
	}
	return snap, 0
}
