/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rpc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/hashing"
)

func TestStoragePrefix(t *testing.T) {
	// well known prefix of System.Account
	require.Equal(t,
		"0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9",
		encoder.ToHex(StoragePrefix("System", "Account")))

	require.Len(t, StoragePrefix(SchemaPalletPrefix, SchemasStorage), prefixLength)
}

func TestSchemaStorageKey(t *testing.T) {
	var id [32]byte
	copy(id[:], bytes.Repeat([]byte{0x42}, 32))

	key, err := SchemaStorageKey(id)
	require.NoError(t, err)
	require.Len(t, key, schemaKeyLength)

	h, err := hashing.Hash(hashing.Blake2b128, id[:])
	require.NoError(t, err)

	require.Equal(t, StoragePrefix(SchemaPalletPrefix, SchemasStorage), key[:prefixLength])
	require.Equal(t, h, key[prefixLength:schemaIDKeyOffset])

	parsed, err := SchemaIDFromKey(key)
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = SchemaIDFromKey(key[1:])
	require.Error(t, err)
}
