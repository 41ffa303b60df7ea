// SPDX-License-Identifier: MIT

package lintconf

// optionEntries declares the full option surface. Defaults follow the
// shipped rc template; deprecated entries stay registered so loaded files
// that still use them produce warnings instead of silent drops.
func optionEntries() []Entry {
	return []Entry{
		// --- MASTER ---
		{Section: "MASTER", Option: "jobs", Kind: KindInt, Default: "1", Env: "LINTRC_JOBS", Status: StatusActive, Help: "Number of parallel checker processes, 0 means auto-detect."},
		{Section: "MASTER", Option: "persistent", Kind: KindBool, Default: "yes", Status: StatusActive, Help: "Pickle collected data for later comparisons."},
		{Section: "MASTER", Option: "ignore", Kind: KindList, Default: "CVS", Env: "LINTRC_IGNORE", Status: StatusActive, Help: "Files or directories to skip, matched by basename."},
		{Section: "MASTER", Option: "ignore-patterns", Kind: KindList, Default: "", Status: StatusActive, Help: "Regex patterns for basenames to skip."},
		{Section: "MASTER", Option: "load-plugins", Kind: KindList, Default: "", Status: StatusActive, Help: "Plugin modules to load at start."},
		{Section: "MASTER", Option: "suggestion-mode", Kind: KindBool, Default: "yes", Status: StatusActive, Help: "Emit user-friendly hints instead of false-positive errors."},
		{Section: "MASTER", Option: "fail-under", Kind: KindInt, Default: "10", Env: "LINTRC_FAIL_UNDER", Status: StatusActive, Help: "Minimum score below which the run exits non-zero."},
		{Section: "MASTER", Option: "limit-inference-results", Kind: KindInt, Default: "100", Status: StatusActive, Help: "Cap on inferred values per node."},
		{Section: "MASTER", Option: "unsafe-load-any-extension", Kind: KindBool, Default: "no", Status: StatusActive},
		{Section: "MASTER", Option: "profile", Kind: KindBool, Default: "no", Status: StatusDeprecated, Since: "1.0", Help: "Profiling support was dropped."},
		{Section: "MASTER", Option: "no-space-check", Kind: KindList, Default: "", Status: StatusDeprecated, Since: "2.6", Help: "Whitespace checks moved to the formatter."},

		// --- MESSAGES CONTROL ---
		{Section: "MESSAGES CONTROL", Option: "disable", Kind: KindList, Default: "", Env: "LINTRC_DISABLE", Status: StatusActive, Help: "Message IDs, symbols, categories, or all."},
		{Section: "MESSAGES CONTROL", Option: "enable", Kind: KindList, Default: "", Env: "LINTRC_ENABLE", Status: StatusActive, Help: "Re-enable messages after disable; applied second."},
		{Section: "MESSAGES CONTROL", Option: "confidence", Kind: KindList, Default: "", Status: StatusActive, Help: "Only show warnings with these confidence levels."},

		// --- REPORTS ---
		{Section: "REPORTS", Option: "output-format", Kind: KindString, Default: "text", Env: "LINTRC_OUTPUT_FORMAT", Status: StatusActive},
		{Section: "REPORTS", Option: "reports", Kind: KindBool, Default: "no", Status: StatusActive, Help: "Display the full report, not just the messages."},
		{Section: "REPORTS", Option: "score", Kind: KindBool, Default: "yes", Status: StatusActive},
		{Section: "REPORTS", Option: "msg-template", Kind: KindString, Default: "", Status: StatusActive},
		{Section: "REPORTS", Option: "files-output", Kind: KindBool, Default: "no", Status: StatusRemoved, Since: "2.0", Help: "Per-module output files were dropped."},

		// --- FORMAT ---
		{Section: "FORMAT", Option: "max-line-length", Kind: KindInt, Default: "100", Env: "LINTRC_MAX_LINE_LENGTH", Status: StatusActive},
		{Section: "FORMAT", Option: "max-module-lines", Kind: KindInt, Default: "1000", Status: StatusActive},
		{Section: "FORMAT", Option: "indent-string", Kind: KindString, Default: "'    '", Status: StatusActive, Help: "Quoted to keep the whitespace visible."},
		{Section: "FORMAT", Option: "indent-after-paren", Kind: KindInt, Default: "4", Status: StatusActive},
		{Section: "FORMAT", Option: "expected-line-ending-format", Kind: KindString, Default: "", Status: StatusActive},
		{Section: "FORMAT", Option: "single-line-if-stmt", Kind: KindBool, Default: "no", Status: StatusActive},
		{Section: "FORMAT", Option: "ignore-long-lines", Kind: KindRegexp, Default: `^\s*(# )?<?https?://\S+>?$`, Status: StatusActive},

		// --- BASIC ---
		{Section: "BASIC", Option: "good-names", Kind: KindList, Default: "i,j,k,ex,Run,_", Status: StatusActive},
		{Section: "BASIC", Option: "bad-names", Kind: KindList, Default: "foo,bar,baz,toto,tutu,tata", Status: StatusActive},
		{Section: "BASIC", Option: "include-naming-hint", Kind: KindBool, Default: "no", Status: StatusActive},
		{Section: "BASIC", Option: "function-rgx", Kind: KindRegexp, Default: "[a-z_][a-z0-9_]{2,30}$", Status: StatusActive},
		{Section: "BASIC", Option: "variable-rgx", Kind: KindRegexp, Default: "[a-z_][a-z0-9_]{2,30}$", Status: StatusActive},
		{Section: "BASIC", Option: "const-rgx", Kind: KindRegexp, Default: "(([A-Z_][A-Z0-9_]*)|(__.*__))$", Status: StatusActive},
		{Section: "BASIC", Option: "class-rgx", Kind: KindRegexp, Default: "[A-Z_][a-zA-Z0-9]+$", Status: StatusActive},
		{Section: "BASIC", Option: "no-docstring-rgx", Kind: KindRegexp, Default: "^_", Status: StatusActive},
		{Section: "BASIC", Option: "docstring-min-length", Kind: KindInt, Default: "-1", Status: StatusActive, Help: "-1 means always require one."},
		{Section: "BASIC", Option: "bad-functions", Kind: KindList, Default: "", Status: StatusDeprecated, Since: "2.0", Help: "Moved to an optional extension."},

		// --- DESIGN ---
		{Section: "DESIGN", Option: "max-args", Kind: KindInt, Default: "5", Status: StatusActive},
		{Section: "DESIGN", Option: "max-locals", Kind: KindInt, Default: "15", Status: StatusActive},
		{Section: "DESIGN", Option: "max-returns", Kind: KindInt, Default: "6", Status: StatusActive},
		{Section: "DESIGN", Option: "max-branches", Kind: KindInt, Default: "12", Status: StatusActive},
		{Section: "DESIGN", Option: "max-statements", Kind: KindInt, Default: "50", Status: StatusActive},
		{Section: "DESIGN", Option: "max-parents", Kind: KindInt, Default: "7", Status: StatusActive},
		{Section: "DESIGN", Option: "max-attributes", Kind: KindInt, Default: "7", Status: StatusActive},
		{Section: "DESIGN", Option: "min-public-methods", Kind: KindInt, Default: "2", Status: StatusActive},
		{Section: "DESIGN", Option: "max-public-methods", Kind: KindInt, Default: "20", Status: StatusActive},
		{Section: "DESIGN", Option: "max-bool-expr", Kind: KindInt, Default: "5", Status: StatusActive},

		// --- SIMILARITIES ---
		{Section: "SIMILARITIES", Option: "min-similarity-lines", Kind: KindInt, Default: "4", Status: StatusActive},
		{Section: "SIMILARITIES", Option: "ignore-comments", Kind: KindBool, Default: "yes", Status: StatusActive},
		{Section: "SIMILARITIES", Option: "ignore-docstrings", Kind: KindBool, Default: "yes", Status: StatusActive},
		{Section: "SIMILARITIES", Option: "ignore-imports", Kind: KindBool, Default: "no", Status: StatusActive},
	}
}
