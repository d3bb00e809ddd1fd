/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
	"github.com/trustbloc/qsb-did-core-go/pkg/payload"
	"github.com/trustbloc/qsb-did-core-go/pkg/restapi/model"
)

func TestBuildPayload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		body := `{"action":"RemoveMetadata","did":"` + testDID.Hex() + `","metadataKey":"name"}`

		rw := httptest.NewRecorder()
		BuildPayload(rw, httptest.NewRequest(http.MethodPost, "/payload", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, rw.Code)

		var response model.PayloadResponse
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &response))
		require.Equal(t, testDID.DID, response.DID)
		require.Equal(t, "QSB_DID_REMOVE_METADATA", response.Prefix)
		require.Len(t, response.Args, 2)

		expected, err := payload.ForCall(payload.RemoveMetadata, extrinsic.RemoveMetadata(testDID, []byte("name")))
		require.NoError(t, err)
		require.Equal(t, encoder.ToHex(expected), response.Payload)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		rw := httptest.NewRecorder()
		BuildPayload(rw, httptest.NewRequest(http.MethodPost, "/payload", strings.NewReader("{")))
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("Invalid DID", func(t *testing.T) {
		rw := httptest.NewRecorder()
		BuildPayload(rw, httptest.NewRequest(http.MethodPost, "/payload",
			strings.NewReader(`{"action":"DeactivateDid","did":""}`)))
		require.Equal(t, http.StatusBadRequest, rw.Code)
		require.Contains(t, rw.Body.String(), "Enter a DID.")
	})

	t.Run("Missing argument", func(t *testing.T) {
		rw := httptest.NewRecorder()
		BuildPayload(rw, httptest.NewRequest(http.MethodPost, "/payload",
			strings.NewReader(`{"action":"RevokeKey","did":"`+testDID.DID+`"}`)))
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})
}

func TestNormalizeSignature(t *testing.T) {
	tests := []struct {
		body      string
		kind      string
		signature string
	}{
		{`"0xabcd"`, "hex", "0xabcd"},
		{`"yv66vg=="`, "base64", "0xcafebabe"},
		{`{"signature":"0x01"}`, "wrapped", "0x01"},
		{`[1,2,255]`, "bytes", "0x0102ff"},
	}

	for _, tc := range tests {
		rw := httptest.NewRecorder()
		NormalizeSignature(rw, httptest.NewRequest(http.MethodPost, "/signature/normalize", strings.NewReader(tc.body)))
		require.Equal(t, http.StatusOK, rw.Code, tc.body)

		var response model.SignatureResponse
		require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &response))
		require.Equal(t, tc.kind, response.Kind)
		require.Equal(t, tc.signature, response.Signature)
	}

	for _, body := range []string{`null`, `""`, `{}`, `{`} {
		rw := httptest.NewRecorder()
		NormalizeSignature(rw, httptest.NewRequest(http.MethodPost, "/signature/normalize", strings.NewReader(body)))
		require.Equal(t, http.StatusBadRequest, rw.Code, body)
	}
}
