// SPDX-License-Identifier: MIT

package lintconf

import (
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/rcfile"
)

// WriteDocument writes an rc document to path atomically: temp file,
// fsync, rename. Readers and the file watcher never observe a partial
// file.
func WriteDocument(path string, doc *rcfile.Document) error {
	logger := log.WithComponent("lintconf")

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending rc file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending rc file")
		}
	}()

	if err := doc.EncodeTo(pending); err != nil {
		return fmt.Errorf("write rc data: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace rc file: %w", err)
	}

	logger.Info().
		Str("event", "lintconf.rc_written").
		Str(log.FieldPath, path).
		Msg("rc file written")
	return nil
}

// DefaultDocument renders the registry defaults as a document, the
// starting point "lintrc init" writes out. Deprecated options are left
// out.
func DefaultDocument() (*rcfile.Document, error) {
	reg, err := GetRegistry()
	if err != nil {
		return nil, err
	}

	b := rcfile.NewBuilder()
	for _, section := range reg.Sections() {
		for _, e := range reg.SectionEntries(section) {
			if e.Status != StatusActive {
				continue
			}
			b.Section(section).Set(e.Option, e.Default)
		}
	}
	return b.Build(), nil
}
