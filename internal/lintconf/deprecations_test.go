// SPDX-License-Identifier: MIT

package lintconf

import (
	"strings"
	"testing"

	"github.com/ssbarnea/lintrc/internal/rcfile"
)

func TestCheckDeprecations(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}

	doc, err := rcfile.ParseString(strings.Join([]string{
		"[MASTER]",
		"jobs=4",
		"no-space-check=trailing-comma",
		"",
		"[REPORTS]",
		"files-output=yes",
		"",
	}, "\n"))
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	warnings := checkDeprecations(reg, doc)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %+v, want 2", warnings)
	}

	byOption := make(map[string]Warning)
	for _, w := range warnings {
		byOption[w.Option] = w
	}

	dep, ok := byOption["no-space-check"]
	if !ok || !strings.Contains(dep.Message, "deprecated since 2.6") {
		t.Errorf("no-space-check warning = %+v", dep)
	}
	if dep.Line != 3 {
		t.Errorf("no-space-check line = %d, want 3", dep.Line)
	}

	rem, ok := byOption["files-output"]
	if !ok || !strings.Contains(rem.Message, "was removed") {
		t.Errorf("files-output warning = %+v", rem)
	}
}

func TestDeprecationMessageFormats(t *testing.T) {
	msg := deprecationMessage(Entry{Option: "old-opt", Status: StatusDeprecated, Since: "1.2", ReplacedBy: "new-opt"})
	want := `option "old-opt" is deprecated since 1.2, use "new-opt" instead`
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}

	msg = deprecationMessage(Entry{Option: "gone", Status: StatusRemoved})
	if msg != `option "gone" was removed` {
		t.Errorf("message = %q", msg)
	}
}

func TestDeprecationSummary(t *testing.T) {
	reg, err := GetRegistry()
	if err != nil {
		t.Fatalf("GetRegistry: %v", err)
	}

	summary := DeprecationSummary(reg)
	if !strings.Contains(summary, "no-space-check") {
		t.Errorf("summary missing no-space-check:\n%s", summary)
	}
	if !strings.Contains(summary, "[MASTER]") {
		t.Errorf("summary missing section context:\n%s", summary)
	}

	empty, err := buildRegistry([]Entry{{Section: "A", Option: "b", Kind: KindString, Status: StatusActive}})
	if err != nil {
		t.Fatalf("buildRegistry: %v", err)
	}
	if got := DeprecationSummary(empty); got != "No deprecated configuration options" {
		t.Errorf("empty summary = %q", got)
	}
}
