/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	core "github.com/trustbloc/qsb-did-core-go/pkg/dochandler"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
)

var logger = log.New("qsb-did-restapi-dochandler")

// Resolver resolves DID documents.
type Resolver interface {
	ResolveDocument(ctx context.Context, did string) (*document.ResolutionResult, error)
}

// ResolveHandler resolves DID documents.
type ResolveHandler struct {
	resolver Resolver
}

// NewResolveHandler returns a new document resolve handler.
func NewResolveHandler(resolver Resolver) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// Resolve resolves a document. Deactivated documents are returned with 410.
func (o *ResolveHandler) Resolve(rw http.ResponseWriter, req *http.Request) {
	id := getID(req)

	logger.Debug("Resolving DID document", log.WithDID(id))

	response, err := o.doResolve(req.Context(), id)
	if err != nil {
		common.WriteHTTPError(rw, err)

		return
	}

	if response.Deactivated() {
		logger.Debug("Resolved deactivated DID document", log.WithDID(id))
		common.WriteDIDResponse(rw, http.StatusGone, response)

		return
	}

	common.WriteDIDResponse(rw, http.StatusOK, response)
}

func (o *ResolveHandler) doResolve(ctx context.Context, id string) (*document.ResolutionResult, error) {
	result, err := o.resolver.ResolveDocument(ctx, id)
	if err != nil {
		httpErr := common.Classify(err, core.ErrDIDNotFound)
		if httpErr.Status() == http.StatusInternalServerError {
			logger.Error("Internal server error", log.WithDID(id), log.WithError(err))
		}

		return nil, httpErr
	}

	return result, nil
}

// Normalize returns the canonical form of a DID.
func Normalize(rw http.ResponseWriter, req *http.Request) {
	d, err := did.Normalize(getID(req))
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)

		return
	}

	common.WriteResponse(rw, http.StatusOK, d)
}

func getID(req *http.Request) string {
	return mux.Vars(req)["id"]
}
