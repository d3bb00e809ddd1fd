/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	core "github.com/trustbloc/qsb-did-core-go/pkg/dochandler"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/mocks"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
)

var (
	testDID        = did.MustFromBytes(bytes.Repeat([]byte{5}, did.IDLength))
	deactivatedDID = did.MustFromBytes(bytes.Repeat([]byte{6}, did.IDLength))
)

func newDocumentHandler(err error) *core.DocumentHandler {
	client := mocks.NewMockChainClient(err)
	client.PutDID(testDID.DID, &document.ChainData{
		Keys: []document.KeyRecord{{PublicKey: []byte{1}, Roles: []document.Role{document.RoleAuthentication}}},
	})
	client.PutDID(deactivatedDID.DID, &document.ChainData{Deactivated: true})

	return core.New(client)
}

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestResolveHandler_Resolve(t *testing.T) {
	handler := NewResolveHandler(newDocumentHandler(nil))

	t.Run("Success", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.Resolve(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), testDID.Hex()))
		require.Equal(t, http.StatusOK, rw.Code)
		require.Equal(t, "application/did+ld+json", rw.Header().Get("content-type"))

		var result document.ResolutionResult
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &result))
		require.Equal(t, testDID.DID, result.Document.ID)
		require.Len(t, result.Document.VerificationMethod, 1)
	})

	t.Run("Deactivated", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.Resolve(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), deactivatedDID.DID))
		require.Equal(t, http.StatusGone, rw.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.Resolve(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), "did:qsb:0OIl"))
		require.Equal(t, http.StatusBadRequest, rw.Code)

		var body model.Error
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
		require.NotEmpty(t, body.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		rw := httptest.NewRecorder()
		id := did.MustFromBytes(bytes.Repeat([]byte{7}, did.IDLength)).DID
		handler.Resolve(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), id))
		require.Equal(t, http.StatusNotFound, rw.Code)
	})

	t.Run("Error", func(t *testing.T) {
		handler := NewResolveHandler(newDocumentHandler(errors.New("get doc error")))

		rw := httptest.NewRecorder()
		handler.Resolve(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), testDID.DID))
		require.Equal(t, http.StatusInternalServerError, rw.Code)
		require.Contains(t, rw.Body.String(), "get doc error")
	})
}

func TestNormalize(t *testing.T) {
	rw := httptest.NewRecorder()
	Normalize(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), testDID.Hex()))
	require.Equal(t, http.StatusOK, rw.Code)
	require.Contains(t, rw.Body.String(), testDID.DID)

	rw = httptest.NewRecorder()
	Normalize(rw, withID(httptest.NewRequest(http.MethodGet, "/did", nil), "0x1234"))
	require.Equal(t, http.StatusBadRequest, rw.Code)

	var body model.Error
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(t, "Hex DID must be 32 bytes.", body.Message)
}
