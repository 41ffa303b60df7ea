// SPDX-License-Identifier: MIT

// Package validate provides configuration validation utilities for lintrc.
package validate

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Error represents a validation error
type Error struct {
	Field   string      // Field name that failed validation
	Value   interface{} // The invalid value
	Message string      // Human-readable error message
}

// Error implements the error interface
func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Validator accumulates validation errors and can produce a ValidationError when invalid.
type Validator struct {
	errors []Error
}

// ValidationError bundles multiple validation errors into a single error value.
type ValidationError struct {
	errors []Error
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		errors: make([]Error, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(field, message string, value interface{}) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// IsValid returns true if no errors have been accumulated
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns all accumulated validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err converts the accumulated validation errors into an error value.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors returns the individual validation errors making up the validation failure.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	// Multiple errors - format as list
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ListenAddr validates a host:port listen address. An empty host is allowed
// (binds all interfaces); the port must be numeric and in range.
func (v *Validator) ListenAddr(field, addr string) {
	if addr == "" {
		v.AddError(field, "listen address cannot be empty", addr)
		return
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), addr)
		return
	}
	_ = host

	p, err := net.LookupPort("tcp", port)
	if err != nil || p <= 0 || p > 65535 {
		v.AddError(field, fmt.Sprintf("invalid port %q", port), addr)
	}
}

// Port validates a port number (1-65535)
func (v *Validator) Port(field string, port int) {
	if port <= 0 || port > 65535 {
		v.AddError(field,
			fmt.Sprintf("port must be between 1 and 65535, got %d", port),
			port)
	}
}

// Range validates that an integer is within a specified range (inclusive)
func (v *Validator) Range(field string, value, minVal, maxVal int) {
	if value < minVal || value > maxVal {
		v.AddError(field,
			fmt.Sprintf("value must be between %d and %d, got %d", minVal, maxVal, value),
			value)
	}
}

// NotEmpty validates that a string is not empty or whitespace-only
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf validates that a value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field,
		fmt.Sprintf("value must be one of %v, got %q", allowed, value),
		value)
}

// Positive validates that a number is positive (> 0)
func (v *Validator) Positive(field string, value int) {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("value must be positive, got %d", value), value)
	}
}

// NonNegative validates that a number is non-negative (>= 0)
func (v *Validator) NonNegative(field string, value int) {
	if value < 0 {
		v.AddError(field, fmt.Sprintf("value cannot be negative, got %d", value), value)
	}
}

// PositiveDuration validates that a duration is strictly positive.
func (v *Validator) PositiveDuration(field string, value time.Duration) {
	if value <= 0 {
		v.AddError(field, fmt.Sprintf("duration must be positive, got %s", value), value)
	}
}

// Regexp validates that a pattern compiles.
func (v *Validator) Regexp(field, pattern string) {
	if pattern == "" {
		return
	}
	if _, err := regexp.Compile(pattern); err != nil {
		v.AddError(field, fmt.Sprintf("invalid regular expression: %v", err), pattern)
	}
}

// File validates that a path names an existing regular file.
func (v *Validator) File(field, path string) {
	if path == "" {
		v.AddError(field, "file path cannot be empty", path)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.AddError(field, "file does not exist", path)
			return
		}
		v.AddError(field, fmt.Sprintf("cannot access file: %v", err), path)
		return
	}
	if info.IsDir() {
		v.AddError(field, "path is a directory, expected file", path)
	}
}

// Directory validates a directory path
// If mustExist is true, the directory must already exist
// If mustExist is false, the directory will be created if it doesn't exist
func (v *Validator) Directory(field, path string, mustExist bool) {
	if path == "" {
		v.AddError(field, "directory path cannot be empty", path)
		return
	}

	// Security: Check for path traversal
	if strings.Contains(path, "..") {
		v.AddError(field, "path contains traversal sequences (..)", path)
		return
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid path: %v", err), path)
		return
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				v.AddError(field, "directory does not exist", path)
				return
			}
			if err := os.MkdirAll(absPath, 0750); err != nil {
				v.AddError(field, fmt.Sprintf("cannot create directory: %v", err), path)
				return
			}
			return
		}
		v.AddError(field, fmt.Sprintf("cannot access directory: %v", err), path)
		return
	}

	if !info.IsDir() {
		v.AddError(field, "path is not a directory", path)
	}
}

// Custom allows custom validation logic
// The validator function should return an error if validation fails
func (v *Validator) Custom(field string, value interface{}, validator func(interface{}) error) {
	if err := validator(value); err != nil {
		v.AddError(field, err.Error(), value)
	}
}
