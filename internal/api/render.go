// SPDX-License-Identifier: MIT

package api

import (
	"github.com/ssbarnea/lintrc/internal/cache"
	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// renderCached serializes the snapshot in the requested format, serving
// repeat requests for the same fingerprint from the render cache.
func (s *Server) renderCached(snap *lintconf.Snapshot, format string) ([]byte, error) {
	key := cache.RenderKey(snap.Fingerprint(), format)
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	payload, err := lintconf.Render(snap, format)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, payload, s.cacheTTL)
	return payload, nil
}

func contentTypeFor(format string) string {
	switch format {
	case lintconf.FormatJSON:
		return "application/json"
	case lintconf.FormatYAML:
		return "application/x-yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}
