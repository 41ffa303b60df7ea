// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/rcfile"
	"github.com/ssbarnea/lintrc/internal/validate"
)

// maxValidateBody bounds POST /validate payloads. Real rc files are a
// few kilobytes; a megabyte is generous.
const maxValidateBody = 1 << 20

type parseErrorDetail struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type validationIssue struct {
	Option  string `json:"option"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

type validateResponse struct {
	Valid      bool              `json:"valid"`
	ParseError *parseErrorDetail `json:"parseError,omitempty"`
	Errors     []validationIssue `json:"errors,omitempty"`
	Warnings   []warningEntry    `json:"warnings,omitempty"`
}

// handleValidate parses and resolves the POSTed rc text and reports the
// outcome. The live snapshot is never touched, and the daemon's own
// LINTRC_* environment is excluded so the report reflects the document
// alone. An invalid document is still a successful validation: the
// verdict travels in the body, not the status code.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		writeError(w, err)
		return
	}

	doc, err := rcfile.Parse(body)
	if err != nil {
		var perr *rcfile.ParseError
		if errors.As(err, &perr) {
			writeJSON(w, http.StatusOK, validateResponse{
				Valid:      false,
				ParseError: &parseErrorDetail{Line: perr.Line, Text: perr.Text, Reason: perr.Reason},
			})
			return
		}
		writeError(w, err)
		return
	}

	resolver := lintconf.NewResolver("")
	resolver.SkipEnvironment()
	snap, err := resolver.ResolveDocument(doc)
	if err != nil {
		var verr validate.ValidationError
		if errors.As(err, &verr) {
			issues := make([]validationIssue, 0, len(verr.Errors()))
			for _, e := range verr.Errors() {
				issues = append(issues, validationIssue{
					Option:  e.Field,
					Value:   fmt.Sprint(e.Value),
					Message: e.Message,
				})
			}
			writeJSON(w, http.StatusOK, validateResponse{Valid: false, Errors: issues})
			return
		}
		writeServiceUnavailable(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:    true,
		Warnings: toWarningEntries(snap.Warnings()),
	})
}
