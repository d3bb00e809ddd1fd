/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
)

// Content types.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeDIDLD  = "application/did+ld+json"
	contentTypeHeader = "Content-Type"
)

// WriteResponse writes a JSON response to the response writer.
func WriteResponse(rw http.ResponseWriter, status int, v interface{}) {
	writeJSON(rw, ContentTypeJSON, status, v)
}

// WriteDIDResponse writes a DID resolution response to the response writer.
func WriteDIDResponse(rw http.ResponseWriter, status int, v interface{}) {
	writeJSON(rw, ContentTypeDIDLD, status, v)
}

// WriteError writes an error to the response writer. Validation errors carry their code.
func WriteError(rw http.ResponseWriter, status int, err error) {
	e := &model.Error{Message: err.Error()}

	var vErr *did.ValidationError
	if errors.As(err, &vErr) {
		e.Code = string(vErr.Code)
	}

	writeJSON(rw, ContentTypeJSON, status, e)
}

// WriteHTTPError writes an HTTPError, or a 500 for any other error.
func WriteHTTPError(rw http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		WriteError(rw, httpErr.Status(), httpErr.Unwrap())

		return
	}

	WriteError(rw, http.StatusInternalServerError, err)
}

func writeJSON(rw http.ResponseWriter, contentType string, status int, v interface{}) {
	rw.Header().Set(contentTypeHeader, contentType)
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		logger.Error("Unable to write response", log.WithError(err))
	}
}
