/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package extrinsic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
)

func testDID() *did.CanonicalDID {
	return did.MustFromBytes(bytes.Repeat([]byte{1}, did.IDLength))
}

// vec returns the SCALE Vec<u8> encoding of short values.
func vec(b []byte) []byte {
	return append([]byte{byte(len(b) << 2)}, b...)
}

func TestArgs(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		b, err := Bytes("abc").Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x0c, 'a', 'b', 'c'}, b)

		b, err = Bytes(nil).Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x00}, b)
	})

	t.Run("long bytes use two byte compact length", func(t *testing.T) {
		b, err := Bytes(bytes.Repeat([]byte{9}, 64)).Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x01}, b[:2])
		require.Len(t, b, 66)
	})

	t.Run("roles", func(t *testing.T) {
		b, err := Roles{document.RoleAuthentication, document.RoleCapabilityDelegation}.Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x08, 0x00, 0x04}, b)

		_, err = Roles{"Owner"}.Encode()
		require.Error(t, err)
	})

	t.Run("service", func(t *testing.T) {
		s := &Service{ID: Bytes("a"), ServiceType: Bytes("bc"), Endpoint: nil}

		b, err := s.Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x04, 'a', 0x08, 'b', 'c', 0x00}, b)
	})

	t.Run("metadata entry", func(t *testing.T) {
		m := &MetadataEntry{Key: Bytes("k"), Value: Bytes("v")}

		b, err := m.Encode()
		require.NoError(t, err)
		require.Equal(t, []byte{0x04, 'k', 0x04, 'v'}, b)
	})
}

func TestCalls(t *testing.T) {
	d := testDID()

	tests := []struct {
		call   *Call
		pallet string
		method string
		args   int
	}{
		{AddKey(d, []byte{1}, []document.Role{document.RoleAuthentication}), DIDPallet, MethodAddKey, 4},
		{RevokeKey(d, []byte{1}), DIDPallet, MethodRevokeKey, 3},
		{DeactivateDID(d), DIDPallet, MethodDeactivateDID, 2},
		{AddService(d, &Service{ID: Bytes("s")}), DIDPallet, MethodAddService, 3},
		{RemoveService(d, []byte("s")), DIDPallet, MethodRemoveService, 3},
		{SetMetadata(d, &MetadataEntry{Key: Bytes("k")}), DIDPallet, MethodSetMetadata, 3},
		{RemoveMetadata(d, []byte("k")), DIDPallet, MethodRemoveMetadata, 3},
		{UpdateRoles(d, []byte{1}, nil), DIDPallet, MethodUpdateRoles, 4},
		{RegisterSchema([]byte("{}"), []byte("https://example.com"), d), SchemaPallet, MethodRegisterSchema, 4},
		{DeprecateSchema("did:qsb:schema:abc", d), SchemaPallet, MethodDeprecateSchema, 3},
	}

	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			require.Equal(t, tc.pallet, tc.call.Pallet)
			require.Equal(t, tc.method, tc.call.Method)
			require.Len(t, tc.call.Args, tc.args)

			encoded, err := tc.call.EncodeArgs()
			require.NoError(t, err)
			require.Equal(t, []byte{0x00}, encoded[len(encoded)-1])
		})
	}

	t.Run("did argument is the DID string", func(t *testing.T) {
		encoded, err := DeactivateDID(d).EncodeArgs()
		require.NoError(t, err)
		require.Equal(t, vec([]byte(d.DID)), encoded[0])
	})
}

func TestWithSignature(t *testing.T) {
	d := testDID()
	call := RevokeKey(d, []byte{7, 8})

	signed := call.WithSignature([]byte{0xaa, 0xbb})
	require.Equal(t, call.String(), signed.String())

	unsigned, err := call.EncodeArgs()
	require.NoError(t, err)

	encoded, err := signed.EncodeArgs()
	require.NoError(t, err)

	require.Equal(t, unsigned[:2], encoded[:2])
	require.Equal(t, []byte{0x08, 0xaa, 0xbb}, encoded[2])

	// original call keeps its placeholder
	require.Equal(t, []byte{0x00}, unsigned[2])

	all, err := signed.Encode()
	require.NoError(t, err)
	require.Equal(t, append(append(append([]byte{}, encoded[0]...), encoded[1]...), encoded[2]...), all)
}

func TestEncodeArgs_Error(t *testing.T) {
	call := AddKey(testDID(), []byte{1}, []document.Role{"Owner"})

	_, err := call.EncodeArgs()
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode argument 2 of Did.add_key")

	_, err = call.Encode()
	require.Error(t, err)
}
