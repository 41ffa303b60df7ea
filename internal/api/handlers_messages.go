// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/ssbarnea/lintrc/internal/lintconf"
)

type messagesResponse struct {
	Enabled  []string `json:"enabled"`
	Disabled []string `json:"disabled"`
	Unknown  []string `json:"unknown,omitempty"`
}

// handleMessages reports the resolved enable/disable state of the
// message catalog under the current snapshot.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	matrix := lintconf.ResolveMessages(snap)
	writeJSON(w, http.StatusOK, messagesResponse{
		Enabled:  matrix.Enabled(),
		Disabled: matrix.Disabled(),
		Unknown:  matrix.Unknown(),
	})
}
