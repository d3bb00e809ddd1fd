/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package diddochandler QSB DID registry API.
//
//
// Terms Of Service:
//
//     Schemes: http, https
//     Host: 127.0.0.1:8080
//     Version: 0.1.0
//     License: SPDX-License-Identifier: Apache-2.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//     - application/did+ld+json
//
// swagger:meta
package diddochandler

import (
	"github.com/trustbloc/qsb-did-core-go/pkg/api/operation"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/dochandler"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
)

// Resolve swagger:route GET /did/{id} resolve-did-document idParams
// Resolves a DID document. The DID may be given as did:qsb, did:qbs, 0x hex or bare base58.
// Responses:
//    default: error
//        200: response
//        410: response

// swagger:route POST /payload build-payload payloadRequest
// Builds the signable payload of a DID operation.
// Responses:
//    default: error
//        200: payloadResponse

// Contains the operation request.
//swagger:parameters payloadRequest
//nolint:deadcode,unused
type payloadRequestWrapper struct {
	// The body of the request.
	//
	// required: true
	// in: body
	Body operation.Request
}

// Contains the payload.
//swagger:response payloadResponse
//nolint:deadcode,unused
type payloadResponseWrapper struct {
	// in: body
	Body model.PayloadResponse
}

// Contains the document.
//swagger:response response
//nolint:deadcode,unused
type responseWrapper struct {
	// The body of the response.
	//
	// required: true
	// in: body
	Body string
}

// Contains the error.
//swagger:response error
//nolint:deadcode,unused
type errorWrapper struct {
	// in: body
	Body model.Error
}

// idParams model
//
//swagger:parameters idParams
//nolint:deadcode,unused
type idParams struct {
	// The DID or schema id.
	//
	// in: path
	// required: true
	ID string `json:"id"`
}

// Provider resolves DID documents and schemas.
type Provider interface {
	dochandler.Resolver
	dochandler.SchemaResolver
}

// NewHandlers returns every REST handler under basePath.
func NewHandlers(basePath string, provider Provider) []common.HTTPHandler {
	return []common.HTTPHandler{
		NewResolveHandler(basePath, provider),
		NewNormalizeHandler(basePath),
		NewPayloadHandler(basePath),
		NewSignatureHandler(basePath),
		NewSchemaIDHandler(basePath, provider),
		NewSchemaResolveHandler(basePath, provider),
	}
}
