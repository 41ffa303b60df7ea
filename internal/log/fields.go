// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID  = "request_id"
	FieldRevisionID = "revision_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldSource    = "source"

	// Configuration fields
	FieldSection     = "section"
	FieldOption      = "option"
	FieldFingerprint = "fingerprint"
	FieldBackend     = "backend"

	// Path / address fields
	FieldPath   = "path"
	FieldListen = "listen"
)
