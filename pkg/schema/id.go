/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives content addressed credential schema identifiers and reads the schema
// records kept by the schema pallet.
package schema

import (
	"strings"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/hashing"
)

const (
	// IDPrefix is the prefix of schema identifiers.
	IDPrefix = "did:qsb:schema:"

	// MaterialPrefix is hashed ahead of the genesis hash and the schema document.
	MaterialPrefix = "QSB_SCHEMA"

	// IDLength is the length of a decoded schema identifier.
	IDLength = 32
)

// Schema id validation messages.
const (
	msgEmptyID         = "Enter schema id."
	msgInvalidIDLength = "Schema id must decode to 32 bytes."
	msgInvalidIDFormat = "Invalid schema id format."
)

// ID is a normalized schema identifier.
type ID struct {
	SchemaID string   `json:"schemaId"`
	Bytes    [32]byte `json:"-"`
}

// Hex returns the 0x hex encoding of the identifier bytes, the schema storage map key.
func (id *ID) Hex() string {
	return encoder.ToHex(id.Bytes[:])
}

// BuildID returns did:qsb:schema:<base58(BLAKE2b-256("QSB_SCHEMA" || genesis || doc))>. The
// document is hashed exactly as given, so any byte difference changes the id.
func BuildID(genesis, doc []byte) string {
	digest := hashing.Blake2b256Sum([]byte(MaterialPrefix), genesis, doc)

	return IDPrefix + encoder.EncodeBase58(digest[:])
}

// BuildIDBytes is like BuildID but returns the normalized identifier.
func BuildIDBytes(genesis, doc []byte) *ID {
	digest := hashing.Blake2b256Sum([]byte(MaterialPrefix), genesis, doc)

	return FromBytes(digest)
}

// FromBytes returns the identifier for the given digest.
func FromBytes(digest [32]byte) *ID {
	return &ID{
		SchemaID: IDPrefix + encoder.EncodeBase58(digest[:]),
		Bytes:    digest,
	}
}

// NormalizeIDInput accepts did:qsb:schema:<base58> or bare base58. Errors are
// *did.ValidationError values.
func NormalizeIDInput(raw string) (*ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, did.NewValidationError(did.EmptyInput, msgEmptyID)
	}

	idPart := strings.TrimPrefix(trimmed, IDPrefix)

	decoded, err := encoder.DecodeBase58(idPart)
	if err != nil {
		return nil, did.NewValidationError(did.MalformedEncoding, msgInvalidIDFormat)
	}

	if len(decoded) != IDLength {
		return nil, did.NewValidationError(did.InvalidLength, msgInvalidIDLength)
	}

	var digest [32]byte

	copy(digest[:], decoded)

	return FromBytes(digest), nil
}

// Digest returns the multihash of the exact schema document bytes.
func Digest(doc []byte) ([]byte, error) {
	return hashing.ComputeMultihash(hashing.Blake2b256, doc)
}
