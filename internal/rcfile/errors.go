// SPDX-License-Identifier: MIT

package rcfile

import (
	"errors"
	"fmt"
)

// Coercion errors returned by the typed accessors.
var (
	// ErrInvalidBool marks a value that is not a recognized boolean literal.
	ErrInvalidBool = errors.New("invalid boolean literal")

	// ErrInvalidInt marks a value that is not a decimal integer.
	ErrInvalidInt = errors.New("invalid integer literal")
)

// ParseError describes the first malformed line encountered while parsing.
// Loading is fail-fast: a malformed configuration cannot be partially
// trusted, so no recovery is attempted.
type ParseError struct {
	File   string // source name, empty when parsing from memory
	Line   int    // 1-based line number
	Text   string // the offending line, verbatim
	Reason string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s: %q", e.File, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func newParseError(file string, line int, text, reason string) *ParseError {
	return &ParseError{File: file, Line: line, Text: text, Reason: reason}
}
