/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/operation"
	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/payload"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/common"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
	"github.com/trustbloc/qsb-did-core-go/pkg/signature"
)

const maxBodySize = 1 << 20

// BuildPayload returns the signable payload of a DID operation request. Nothing is signed or
// submitted.
func BuildPayload(rw http.ResponseWriter, req *http.Request) {
	body, err := readBody(rw, req)
	if err != nil {
		common.WriteHTTPError(rw, err)

		return
	}

	var request operation.Request
	if err := json.Unmarshal(body, &request); err != nil {
		common.WriteError(rw, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))

		return
	}

	response, err := buildPayload(&request)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)

		return
	}

	logger.Debug("Built payload", log.WithDID(response.DID), log.WithAction(response.Action))

	common.WriteResponse(rw, http.StatusOK, response)
}

func buildPayload(request *operation.Request) (*model.PayloadResponse, error) {
	d, err := did.Normalize(request.DID)
	if err != nil {
		return nil, err
	}

	call, err := request.Call(d)
	if err != nil {
		return nil, err
	}

	p, err := payload.New(request.Action, call)
	if err != nil {
		return nil, err
	}

	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = encoder.ToHex(arg)
	}

	return &model.PayloadResponse{
		Action:  string(request.Action),
		DID:     d.DID,
		Prefix:  p.Prefix,
		Args:    args,
		Payload: p.Hex(),
	}, nil
}

// NormalizeSignature converts a raw signer result, posted as the request body, to hex.
func NormalizeSignature(rw http.ResponseWriter, req *http.Request) {
	body, err := readBody(rw, req)
	if err != nil {
		common.WriteHTTPError(rw, err)

		return
	}

	v, err := signature.ParseJSON(body)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)

		return
	}

	h, err := signature.Normalize(v)
	if err != nil {
		common.WriteError(rw, http.StatusBadRequest, err)

		return
	}

	common.WriteResponse(rw, http.StatusOK, &model.SignatureResponse{Kind: string(v.Kind()), Signature: h})
}

// readBody reads a request body of at most maxBodySize bytes. Larger bodies are refused with 413.
func readBody(rw http.ResponseWriter, req *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(rw, req.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, common.NewHTTPError(http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", maxBodySize))
		}

		return nil, common.NewHTTPError(http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
	}

	return body, nil
}
