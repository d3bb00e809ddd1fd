/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"errors"
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
)

// HTTPError pairs an error with the HTTP status it is reported with.
type HTTPError struct {
	err    error
	status int
}

// NewHTTPError returns a new HTTPError.
func NewHTTPError(status int, err error) *HTTPError {
	return &HTTPError{err: err, status: status}
}

// Classify maps an error of a lookup to its HTTP status: input validation errors are reported
// with 400, errors matching one of notFound with 404 and anything else with 500.
func Classify(err error, notFound ...error) *HTTPError {
	if did.IsValidationError(err) {
		return NewHTTPError(http.StatusBadRequest, err)
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			return NewHTTPError(http.StatusNotFound, err)
		}
	}

	return NewHTTPError(http.StatusInternalServerError, err)
}

func (e *HTTPError) Error() string {
	return e.err.Error()
}

// Status returns the status code.
func (e *HTTPError) Status() int {
	return e.status
}

// Unwrap returns the underlying error.
func (e *HTTPError) Unwrap() error {
	return e.err
}
