// SPDX-License-Identifier: MIT

// lintrc inspects and maintains pylintrc-style configuration files
// offline: validation, dumps, single-value lookup, diffs between two
// files, message-control resolution, the option registry, and
// scaffolding a fresh rc file.
//
// Usage:
//
//	lintrc validate -f PATH [--strict]
//	lintrc dump -f PATH [--effective] [--format=ini|json|yaml]
//	lintrc get -f PATH SECTION KEY [--default V] [--as string|int|bool|list]
//	lintrc diff -a OLD -b NEW
//	lintrc messages -f PATH
//	lintrc registry [--section S]
//	lintrc init -o PATH [--force]
//
// Exit codes:
//   - 0: success (for diff: the files resolve identically)
//   - 1: invalid configuration, or diff found differences
//   - 2: usage or I/O error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/version"
)

func main() {
	// Package logs (deprecation warnings and the like) go to stderr so
	// stdout stays parseable; errors are reported by the commands
	// themselves.
	log.Configure(log.Config{Level: "error", Output: os.Stderr, Service: "lintrc"})
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	case "-version", "--version", "version":
		fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		return 0
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "dump":
		return runDump(args[1:], stdout, stderr)
	case "get":
		return runGet(args[1:], stdout, stderr)
	case "diff":
		return runDiff(args[1:], stdout, stderr)
	case "messages":
		return runMessages(args[1:], stdout, stderr)
	case "registry":
		return runRegistry(args[1:], stdout, stderr)
	case "init":
		return runInit(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lintrc validate -f PATH [--strict]")
	fmt.Fprintln(w, "  lintrc dump -f PATH [--effective] [--format=ini|json|yaml]")
	fmt.Fprintln(w, "  lintrc get -f PATH SECTION KEY [--default V] [--as string|int|bool|list]")
	fmt.Fprintln(w, "  lintrc diff -a OLD -b NEW")
	fmt.Fprintln(w, "  lintrc messages -f PATH")
	fmt.Fprintln(w, "  lintrc registry [--section S]")
	fmt.Fprintln(w, "  lintrc init -o PATH [--force]")
	fmt.Fprintln(w, "  lintrc version")
}
