// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Validation errors returned by the primitive validators. Every failure is
// wrapped in a [*VariableError] that names the offending variable, so callers
// should match with [errors.Is] rather than comparing directly.
var (
	// ErrMissingRequiredVariable indicates that a required variable is absent
	// or blank and has no default value.
	ErrMissingRequiredVariable = errors.New("missing required environment variable")
	// ErrInvalidPath indicates an absolute path or a parent-directory
	// traversal where a contained relative path is expected.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidInteger indicates a non-numeric, fractional, zero (when zero
	// is disallowed) or out-of-range integer value.
	ErrInvalidInteger = errors.New("invalid integer")
	// ErrInvalidURL indicates a value that is neither an absolute URL nor a
	// root-relative path, or an absolute URL with a disallowed protocol.
	ErrInvalidURL = errors.New("invalid url")
)

// VariableError describes a single rejected environment variable.
type VariableError struct {
	// Key is the name of the environment variable.
	Key string
	// Reason is a human-readable description of the violated rule.
	Reason string
	// Err is one of the package sentinel errors.
	Err error
}

func newVariableError(key string, sentinel error, format string, args ...any) *VariableError {
	return &VariableError{
		Key:    key,
		Reason: fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}

// Error implements the error interface.
func (e *VariableError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Err, e.Key, e.Reason)
}

// Unwrap returns the sentinel error so [errors.Is] works on wrapped values.
func (e *VariableError) Unwrap() error {
	return e.Err
}
