/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"errors"
)

// Code identifies the reason a value failed validation.
type Code string

// Validation error codes.
const (
	EmptyInput         Code = "empty-input"
	InvalidLength      Code = "invalid-length"
	MalformedEncoding  Code = "malformed-encoding"
	UnrecognizedFormat Code = "unrecognized-format"
)

// ValidationError is returned for user input that cannot be turned into a canonical identifier.
// Reason is suitable for display to the user.
type ValidationError struct {
	Code   Code
	Reason string
}

// NewValidationError returns a new ValidationError.
func NewValidationError(code Code, reason string) *ValidationError {
	return &ValidationError{Code: code, Reason: reason}
}

// Error returns the reason.
func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError returns true if err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError

	return errors.As(err, &vErr)
}

// ValidationCode returns the code of the ValidationError wrapped by err, or "" if there is none.
func ValidationCode(err error) Code {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Code
	}

	return ""
}
