// SPDX-License-Identifier: MIT

package rcfile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lines can carry long suppression lists; allow up to 1 MiB per line.
const maxLineBytes = 1 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads INI-style configuration text into a Document.
//
// Recognized line forms: blank lines, full-line comments (# or ; first),
// [SECTION] headers, key=value pairs (":" is accepted as delimiter too),
// and indented continuations of the previous value. Anything else is a
// ParseError, as is a key-value pair before any section header. Parsing
// is a single pass and stops at the first malformed line.
func Parse(data []byte) (*Document, error) {
	return parse("", data)
}

// ParseString parses in-memory configuration text.
func ParseString(text string) (*Document, error) {
	return parse("", []byte(text))
}

// ParseFile reads and parses the configuration file at path. The path is
// normalized (NFC, cleaned) before use so callers can pass user input
// verbatim.
func ParseFile(path string) (*Document, error) {
	clean := filepath.Clean(norm.NFC.String(path))
	data, err := os.ReadFile(clean) // #nosec G304 -- the rc path is operator-supplied by design
	if err != nil {
		return nil, fmt.Errorf("read rc file: %w", err)
	}
	return parse(clean, data)
}

func parse(file string, data []byte) (*Document, error) {
	doc := &Document{
		source: file,
		index:  make(map[string]*Section),
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		current *Section
		lastKey string
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSuffix(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(raw)

		// Blank lines end any running continuation.
		if trimmed == "" {
			lastKey = ""
			continue
		}

		// Full-line comments, indented or not.
		if trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		// Indented content continues the previous option's value.
		if raw[0] == ' ' || raw[0] == '\t' {
			if current == nil || lastKey == "" {
				return nil, newParseError(file, lineNo, raw, "continuation line without a preceding option")
			}
			content := stripInlineComment(trimmed)
			if content == "" {
				continue
			}
			current.values[lastKey] += "\n" + content
			continue
		}

		if trimmed[0] == '[' {
			name, err := parseHeader(file, lineNo, raw, trimmed)
			if err != nil {
				return nil, err
			}
			// Duplicate headers merge key sets into the section at
			// its first position.
			if sec, ok := doc.index[name]; ok {
				current = sec
			} else {
				current = &Section{
					name:   name,
					values: make(map[string]string),
					lines:  make(map[string]int),
					line:   lineNo,
				}
				doc.sections = append(doc.sections, current)
				doc.index[name] = current
			}
			lastKey = ""
			continue
		}

		delim := delimiterIndex(trimmed)
		if delim < 0 {
			return nil, newParseError(file, lineNo, raw, "line is not a comment, section header, or key-value pair")
		}
		if current == nil {
			return nil, newParseError(file, lineNo, raw, "key-value pair before any section header")
		}

		key := normalizeKey(trimmed[:delim])
		if key == "" {
			return nil, newParseError(file, lineNo, raw, "empty option key")
		}
		value := strings.TrimSpace(stripInlineComment(strings.TrimSpace(trimmed[delim+1:])))

		// Last write wins; the key keeps its first-seen position.
		if _, exists := current.values[key]; !exists {
			current.keys = append(current.keys, key)
		}
		current.values[key] = value
		current.lines[key] = lineNo
		lastKey = key
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rc input: %w", err)
	}

	return doc, nil
}

func parseHeader(file string, lineNo int, raw, trimmed string) (string, error) {
	end := strings.Index(trimmed, "]")
	if end < 0 {
		return "", newParseError(file, lineNo, raw, "unterminated section header")
	}
	name := strings.TrimSpace(trimmed[1:end])
	if name == "" {
		return "", newParseError(file, lineNo, raw, "empty section name")
	}
	rest := strings.TrimSpace(trimmed[end+1:])
	if rest != "" && rest[0] != '#' && rest[0] != ';' {
		return "", newParseError(file, lineNo, raw, "trailing characters after section header")
	}
	return name, nil
}

// delimiterIndex returns the position of the first '=' or ':' in s, or -1.
func delimiterIndex(s string) int {
	eq := strings.IndexByte(s, '=')
	colon := strings.IndexByte(s, ':')
	switch {
	case eq < 0:
		return colon
	case colon < 0:
		return eq
	case eq < colon:
		return eq
	default:
		return colon
	}
}

// stripInlineComment truncates s at a '#' or ';' that starts the string or
// follows whitespace. Markers embedded in a value (no preceding space)
// pass through untouched.
func stripInlineComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' || s[i] == ';' {
			if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
				return strings.TrimRight(s[:i], " \t")
			}
		}
	}
	return s
}
