// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

type optionEntry struct {
	Section string `json:"section"`
	Option  string `json:"option"`
	Value   string `json:"value"`
	Origin  string `json:"origin"`
}

type warningEntry struct {
	Section string `json:"section"`
	Option  string `json:"option"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

type configResponse struct {
	Path        string         `json:"path,omitempty"`
	Fingerprint string         `json:"fingerprint"`
	LoadedAt    time.Time      `json:"loadedAt"`
	Options     []optionEntry  `json:"options"`
	Warnings    []warningEntry `json:"warnings,omitempty"`
}

// handleConfig returns the full effective snapshot: every option with
// its value and provenance, plus resolve-time warnings.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	resp := configResponse{
		Path:        snap.Path(),
		Fingerprint: snap.Fingerprint(),
		LoadedAt:    snap.LoadedAt(),
		Options:     sectionOptions(snap, snap.EffectiveDocument().Sections()...),
		Warnings:    toWarningEntries(snap.Warnings()),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleConfigRaw returns the rendered document. The format query
// selects ini (default), json, or yaml; payloads are cached per
// fingerprint so repeated dumps cost one render per swap.
func (s *Server) handleConfigRaw(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = lintconf.FormatINI
	}

	payload, err := s.renderCached(snap, format)
	if err != nil {
		if errors.Is(err, lintconf.ErrUnknownFormat) {
			writeError(w, err)
			return
		}
		writeServiceUnavailable(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("X-Config-Fingerprint", snap.Fingerprint())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

type sectionResponse struct {
	Section string        `json:"section"`
	Options []optionEntry `json:"options"`
}

// handleSection returns one section of the effective snapshot. Section
// names match case-insensitively since rc files conventionally use
// upper case.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	name, err := pathParam(r, "section")
	if err != nil {
		writeError(w, err)
		return
	}

	sec := findSection(snap, name)
	if sec == nil {
		writeNotFound(w)
		return
	}

	writeJSON(w, http.StatusOK, sectionResponse{
		Section: sec.Name(),
		Options: sectionOptions(snap, sec),
	})
}

type optionResponse struct {
	Section string `json:"section"`
	Option  string `json:"option"`
	Value   string `json:"value"`
	Origin  string `json:"origin,omitempty"`
	Found   bool   `json:"found"`
}

// handleOption looks up a single option. The lookup never fails: an
// absent option answers 200 with found=false and the caller's default.
func (s *Server) handleOption(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	section, err := pathParam(r, "section")
	if err != nil {
		writeError(w, err)
		return
	}
	option, err := pathParam(r, "option")
	if err != nil {
		writeError(w, err)
		return
	}

	resp := optionResponse{Section: section, Option: option}
	if sec := findSection(snap, section); sec != nil {
		resp.Section = sec.Name()
	} else {
		resp.Section = strings.ToUpper(section)
	}

	value, found := snap.Lookup(resp.Section, option)
	if found {
		resp.Value = value
		resp.Found = true
		if origin, ok := snap.Origin(resp.Section, option); ok {
			resp.Origin = string(origin)
		}
	} else {
		resp.Value = r.URL.Query().Get("default")
	}

	writeJSON(w, http.StatusOK, resp)
}

// pathParam returns the decoded URL parameter. Section names may carry
// escaped spaces ("MESSAGES%20CONTROL").
func pathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	return url.PathUnescape(raw)
}

// findSection resolves a section of the effective document, trying the
// name verbatim and then upper-cased.
func findSection(snap *lintconf.Snapshot, name string) *rcfile.Section {
	doc := snap.EffectiveDocument()
	if sec := doc.Section(name); sec != nil {
		return sec
	}
	return doc.Section(strings.ToUpper(name))
}

func sectionOptions(snap *lintconf.Snapshot, sections ...*rcfile.Section) []optionEntry {
	out := make([]optionEntry, 0, 64)
	for _, sec := range sections {
		for _, key := range sec.Keys() {
			value, _ := sec.Value(key)
			entry := optionEntry{Section: sec.Name(), Option: key, Value: value}
			if origin, ok := snap.Origin(sec.Name(), key); ok {
				entry.Origin = string(origin)
			}
			out = append(out, entry)
		}
	}
	return out
}

func toWarningEntries(warnings []lintconf.Warning) []warningEntry {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]warningEntry, len(warnings))
	for i, w := range warnings {
		out[i] = warningEntry{Section: w.Section, Option: w.Option, Line: w.Line, Message: w.Message}
	}
	return out
}
