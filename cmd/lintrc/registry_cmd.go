// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// runRegistry prints the known-option inventory, optionally narrowed
// to one section.
func runRegistry(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lintrc registry", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var section string
	fs.StringVar(&section, "section", "", "limit output to one section")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg, err := lintconf.GetRegistry()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	sections := reg.Sections()
	if s := strings.TrimSpace(section); s != "" {
		if len(reg.SectionEntries(s)) == 0 {
			fmt.Fprintf(stderr, "Unknown section: %s\n", s)
			return 2
		}
		sections = []string{s}
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Option", "Kind", "Default", "Env", "Status"})

	count := 0
	for _, name := range sections {
		for _, e := range reg.SectionEntries(name) {
			status := string(e.Status)
			if e.Status == lintconf.StatusDeprecated && e.ReplacedBy != "" {
				status = fmt.Sprintf("%s (use %s)", e.Status, e.ReplacedBy)
			}
			t.AppendRow(table.Row{e.Section, e.Option, string(e.Kind), e.Default, e.Env, status})
			count++
		}
	}
	t.Render()
	fmt.Fprintf(stdout, "(%d options)\n", count)
	return 0
}
