/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
)

var genesis = bytes.Repeat([]byte{0xab}, 32)

func TestBuildID(t *testing.T) {
	doc := []byte(`{"type":"object"}`)

	id := BuildID(genesis, doc)
	require.True(t, strings.HasPrefix(id, IDPrefix))
	require.Equal(t, id, BuildID(genesis, doc))

	material := append(append([]byte("QSB_SCHEMA"), genesis...), doc...)
	digest := blake2b.Sum256(material)
	require.Equal(t, IDPrefix+base58.Encode(digest[:]), id)

	t.Run("any byte change changes the id", func(t *testing.T) {
		require.NotEqual(t, id, BuildID(genesis, []byte(`{"type": "object"}`)))
		require.NotEqual(t, id, BuildID(genesis, []byte(`{"type":"object"} `)))
		require.NotEqual(t, id, BuildID(genesis[:31], doc))
	})

	t.Run("bytes form", func(t *testing.T) {
		n := BuildIDBytes(genesis, doc)
		require.Equal(t, id, n.SchemaID)
		require.Equal(t, digest, n.Bytes)
		require.Len(t, n.Hex(), 66)
	})
}

func TestNormalizeIDInput(t *testing.T) {
	expected := BuildIDBytes(genesis, []byte("{}"))
	bare := strings.TrimPrefix(expected.SchemaID, IDPrefix)

	for _, input := range []string{expected.SchemaID, bare, "  " + expected.SchemaID + "\n"} {
		id, err := NormalizeIDInput(input)
		require.NoError(t, err)
		require.Equal(t, expected, id)
	}

	tests := []struct {
		input  string
		code   did.Code
		reason string
	}{
		{"", did.EmptyInput, "Enter schema id."},
		{"did:qsb:schema:invalid!", did.MalformedEncoding, "Invalid schema id format."},
		{"did:qsb:schema:0OIl", did.MalformedEncoding, "Invalid schema id format."},
		{IDPrefix + base58.Encode([]byte{1, 2, 3}), did.InvalidLength, "Schema id must decode to 32 bytes."},
	}

	for _, tc := range tests {
		_, err := NormalizeIDInput(tc.input)
		require.Error(t, err)
		require.Equal(t, tc.code, did.ValidationCode(err))
		require.EqualError(t, err, tc.reason)
	}
}

func TestDigest(t *testing.T) {
	mh, err := Digest([]byte("{}"))
	require.NoError(t, err)

	decoded, err := multihash.Decode(mh)
	require.NoError(t, err)
	require.Equal(t, uint64(multihash.BLAKE2B_MIN+31), decoded.Code)
	require.Len(t, decoded.Digest, 32)
}
