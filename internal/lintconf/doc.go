// SPDX-License-Identifier: MIT

// Package lintconf turns parsed rc documents into validated, effective
// configuration snapshots.
//
// It owns the option registry (every known section/option with its type
// and default), the precedence chain (defaults, rc file, LINTRC_*
// environment, explicit overrides), deprecation warnings, message
// enable/disable resolution, and the hot-reload holder.
package lintconf
