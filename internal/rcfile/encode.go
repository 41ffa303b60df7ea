// SPDX-License-Identifier: MIT

package rcfile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Encode renders the document back to rc text. Sections and keys keep
// their parsed order, so Parse(doc.Encode()) yields an equal document.
func (d *Document) Encode() []byte {
	var buf bytes.Buffer
	_ = d.EncodeTo(&buf)
	return buf.Bytes()
}

// EncodeTo writes the rc rendering of the document to w.
func (d *Document) EncodeTo(w io.Writer) error {
	for i, sec := range d.sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", sec.name); err != nil {
			return err
		}
		for _, key := range sec.keys {
			if err := writeOption(w, key, sec.values[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeOption emits key=value, spreading multi-line values over indented
// continuation lines so the output parses back to the same value.
func writeOption(w io.Writer, key, value string) error {
	parts := strings.Split(value, "\n")
	if _, err := fmt.Fprintf(w, "%s=%s\n", key, parts[0]); err != nil {
		return err
	}
	for _, part := range parts[1:] {
		if _, err := fmt.Fprintf(w, "    %s\n", part); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint returns the hex SHA-256 of the canonical encoding. Two
// documents with the same sections, keys, and values in the same order
// share a fingerprint regardless of comments or whitespace in the input.
func (d *Document) Fingerprint() string {
	sum := sha256.Sum256(d.Encode())
	return hex.EncodeToString(sum[:])
}
