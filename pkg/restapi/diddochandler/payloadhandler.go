/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package diddochandler

import (
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/dochandler"
)

// PayloadHandler builds signable DID payloads.
type PayloadHandler struct {
	*handler
}

// NewPayloadHandler returns a new payload handler.
func NewPayloadHandler(basePath string) *PayloadHandler {
	return &PayloadHandler{
		handler: newHandler(basePath, "/payload", http.MethodPost, dochandler.BuildPayload),
	}
}

// SignatureHandler normalizes signer results.
type SignatureHandler struct {
	*handler
}

// NewSignatureHandler returns a new signature normalize handler.
func NewSignatureHandler(basePath string) *SignatureHandler {
	return &SignatureHandler{
		handler: newHandler(basePath, "/signature/normalize", http.MethodPost, dochandler.NormalizeSignature),
	}
}
