// SPDX-License-Identifier: MIT

package lintconf

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// Formats accepted by Render.
const (
	FormatINI  = "ini"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat marks a render format outside ini, json, yaml.
var ErrUnknownFormat = errors.New("unknown render format")

// Render serializes the effective configuration. INI preserves registry
// and file order; JSON and YAML emit per-section maps with sorted keys.
func Render(s *Snapshot, format string) ([]byte, error) {
	return RenderDocument(s.EffectiveDocument(), format)
}

// RenderDocument serializes a single document under the same format
// rules as Render.
func RenderDocument(doc *rcfile.Document, format string) ([]byte, error) {
	switch format {
	case FormatINI:
		return doc.Encode(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(sectionTree(doc), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		b, err := yaml.Marshal(sectionTree(doc))
		if err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func sectionTree(doc *rcfile.Document) map[string]map[string]string {
	sections := doc.Sections()
	out := make(map[string]map[string]string, len(sections))
	for _, sec := range sections {
		opts := make(map[string]string, len(sec.Keys()))
		for _, key := range sec.Keys() {
			v, _ := sec.Value(key)
			opts[key] = v
		}
		out[sec.Name()] = opts
	}
	return out
}
