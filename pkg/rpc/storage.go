/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rpc

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/xxhash"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/hashing"
)

// Schema pallet storage.
const (
	SchemaPalletPrefix = "Schema"
	SchemasStorage     = "Schemas"
)

const (
	prefixLength      = 32
	blake2b128Length  = 16
	schemaIDLength    = 32
	schemaKeyLength   = prefixLength + blake2b128Length + schemaIDLength
	schemaIDKeyOffset = prefixLength + blake2b128Length
)

// StoragePrefix returns twox128(pallet) || twox128(item).
func StoragePrefix(pallet, item string) []byte {
	return encoder.Concat(twox128(pallet), twox128(item))
}

// SchemaStorageKey returns the key of a schema record in the Blake2_128Concat schema map.
func SchemaStorageKey(id [32]byte) ([]byte, error) {
	h, err := hashing.Hash(hashing.Blake2b128, id[:])
	if err != nil {
		return nil, err
	}

	return encoder.Concat(StoragePrefix(SchemaPalletPrefix, SchemasStorage), h, id[:]), nil
}

// SchemaIDFromKey returns the schema id at the end of a schema map key.
func SchemaIDFromKey(key []byte) ([32]byte, error) {
	var id [32]byte

	if len(key) != schemaKeyLength {
		return id, fmt.Errorf("invalid schema storage key length: %d", len(key))
	}

	copy(id[:], key[schemaIDKeyOffset:])

	return id, nil
}

func twox128(value string) []byte {
	return xxhash.New128([]byte(value)).Sum(nil)
}
