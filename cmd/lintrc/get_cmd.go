// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// runGet looks up one option in the resolved configuration. Absent
// keys never fail: the --default value (or the zero value) is printed
// instead.
func runGet(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc get", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var defVal string
	var as string
	fs.StringVar(&file, "file", "", "path to the rc file")
	fs.StringVar(&file, "f", "", "path to the rc file (shorthand)")
	fs.StringVar(&defVal, "default", "", "value to print when the option is absent")
	fs.StringVar(&as, "as", "string", "coerce the value: string, int, bool or list")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: expected SECTION and KEY arguments")
		return 2
	}
	section, key := fs.Arg(0), fs.Arg(1)

	resolver := lintconf.NewResolver(strings.TrimSpace(file))
	snap, err := resolver.Resolve()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", file, err)
		return 1
	}

	switch strings.ToLower(strings.TrimSpace(as)) {
	case "string", "":
		fmt.Fprintln(stdout, snap.Get(section, key, defVal))
	case "int":
		def := 0
		if defVal != "" {
			n, err := strconv.Atoi(defVal)
			if err != nil {
				fmt.Fprintf(stderr, "Error: --default %q is not an integer\n", defVal)
				return 2
			}
			def = n
		}
		n, err := snap.GetInt(section, key, def)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, n)
	case "bool":
		def := false
		if defVal != "" {
			b, err := rcfile.ParseBool(defVal)
			if err != nil {
				fmt.Fprintf(stderr, "Error: --default %q is not a boolean\n", defVal)
				return 2
			}
			def = b
		}
		b, err := snap.GetBool(section, key, def)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, b)
	case "list":
		values := snap.GetList(section, key)
		if len(values) == 0 && defVal != "" {
			values = rcfile.SplitList(defVal)
		}
		for _, v := range values {
			fmt.Fprintln(stdout, v)
		}
	default:
		fmt.Fprintf(stderr, "Unsupported type: %s (use string, int, bool or list)\n", as)
		return 2
	}
	return 0
}
