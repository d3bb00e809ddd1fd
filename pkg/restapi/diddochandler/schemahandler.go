/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package diddochandler

import (
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/dochandler"
)

// SchemaIDHandler computes schema ids.
type SchemaIDHandler struct {
	*handler
}

// NewSchemaIDHandler returns a new schema id handler.
func NewSchemaIDHandler(basePath string, resolver dochandler.SchemaResolver) *SchemaIDHandler {
	return &SchemaIDHandler{
		handler: newHandler(basePath, "/schema/id", http.MethodPost, dochandler.NewSchemaHandler(resolver).ComputeID),
	}
}

// SchemaResolveHandler resolves schema records.
type SchemaResolveHandler struct {
	*handler
}

// NewSchemaResolveHandler returns a new schema resolve handler.
func NewSchemaResolveHandler(basePath string, resolver dochandler.SchemaResolver) *SchemaResolveHandler {
	return &SchemaResolveHandler{
		handler: newHandler(basePath, "/schema/{id}", http.MethodGet, dochandler.NewSchemaHandler(resolver).Resolve),
	}
}
