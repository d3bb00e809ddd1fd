/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package diddochandler

import (
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/dochandler"
)

// ResolveHandler resolves DID documents.
type ResolveHandler struct {
	*handler
}

// NewResolveHandler returns a new DID document resolve handler.
func NewResolveHandler(basePath string, resolver dochandler.Resolver) *ResolveHandler {
	return &ResolveHandler{
		handler: newHandler(basePath, "/did/{id}", http.MethodGet, dochandler.NewResolveHandler(resolver).Resolve),
	}
}

// NormalizeHandler returns the canonical form of a DID.
type NormalizeHandler struct {
	*handler
}

// NewNormalizeHandler returns a new DID normalize handler.
func NewNormalizeHandler(basePath string) *NormalizeHandler {
	return &NormalizeHandler{
		handler: newHandler(basePath, "/did/{id}/normalize", http.MethodGet, dochandler.Normalize),
	}
}
