/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"context"
	"net/http"
	"strconv"

	core "github.com/trustbloc/qsb-did-core-go/pkg/dochandler"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
	"github.com/trustbloc/qsb-did-core-go/pkg/schema"
)

const (
	canonicalizeParam = "canonicalize"
	strictParam       = "strict"
)

// SchemaResolver computes schema ids and resolves schema records.
type SchemaResolver interface {
	SchemaID(ctx context.Context, doc []byte) (*schema.ID, error)
	ResolveSchema(ctx context.Context, id string) (*schema.Record, error)
}

// SchemaHandler serves schema ids and records.
type SchemaHandler struct {
	resolver SchemaResolver
}

// NewSchemaHandler returns a new schema handler.
func NewSchemaHandler(resolver SchemaResolver) *SchemaHandler {
	return &SchemaHandler{resolver: resolver}
}

// ComputeID returns the id of the schema document posted as the request body. The id is
// computed over the exact body bytes unless canonicalize=true is given. Any JSON document is
// accepted; strict=true also requires it to compile as a JSON Schema.
func (o *SchemaHandler) ComputeID(rw http.ResponseWriter, req *http.Request) {
	doc, err := readBody(rw, req)
	if err != nil {
		common.WriteHTTPError(rw, err)

		return
	}

	validate := schema.Validate
	if strict, _ := strconv.ParseBool(req.URL.Query().Get(strictParam)); strict {
		validate = schema.Compile
	}

	if err := validate(doc); err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)

		return
	}

	if canonicalize, _ := strconv.ParseBool(req.URL.Query().Get(canonicalizeParam)); canonicalize {
		doc, err = schema.Canonicalize(doc)
		if err != nil {
			common.WriteError(rw, http.StatusBadRequest, err)

			return
		}
	}

	id, err := o.resolver.SchemaID(req.Context(), doc)
	if err != nil {
		logger.Error("Failed to compute schema id", log.WithError(err))
		common.WriteError(rw, http.StatusInternalServerError, err)

		return
	}

	digest, err := schema.Digest(doc)
	if err != nil {
		common.WriteError(rw, http.StatusInternalServerError, err)

		return
	}

	common.WriteResponse(rw, http.StatusOK, &model.SchemaIDResponse{
		SchemaID: id.SchemaID,
		Hex:      id.Hex(),
		Digest:   encoder.ToHex(digest),
	})
}

// Resolve returns the schema record of the id in the request path.
func (o *SchemaHandler) Resolve(rw http.ResponseWriter, req *http.Request) {
	id := getID(req)

	record, err := o.resolver.ResolveSchema(req.Context(), id)
	if err != nil {
		httpErr := common.Classify(err, core.ErrSchemaNotFound)
		if httpErr.Status() == http.StatusInternalServerError {
			logger.Error("Failed to resolve schema", log.WithSchemaID(id), log.WithError(err))
		}

		common.WriteHTTPError(rw, httpErr)

		return
	}

	common.WriteResponse(rw, http.StatusOK, record)
}
