/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hashing

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
)

// Hash function codes, as registered in the multihash table.
const (
	SHA2256    uint64 = multihash.SHA2_256
	Blake2b128 uint64 = multihash.BLAKE2B_MIN + 15
	Blake2b256 uint64 = multihash.BLAKE2B_MIN + 31
)

const blake2b128Size = 16

// GetHash returns a new hash function for the given multihash code.
func GetHash(code uint64) (hash.Hash, error) {
	switch code {
	case SHA2256:
		return sha256.New(), nil
	case Blake2b256:
		return blake2b.New256(nil)
	case Blake2b128:
		return blake2b.New(blake2b128Size, nil)
	default:
		return nil, fmt.Errorf("hash function not supported for multihash code: %d", code)
	}
}

// Hash calculates the digest of the concatenation of parts using the hash function identified by code.
func Hash(code uint64, parts ...[]byte) ([]byte, error) {
	h, err := GetHash(code)
	if err != nil {
		return nil, err
	}

	for _, p := range parts {
		if _, hashErr := h.Write(p); hashErr != nil {
			return nil, hashErr
		}
	}

	return h.Sum(nil), nil
}

// Blake2b256Sum returns the 32 byte BLAKE2b digest of the concatenation of parts.
func Blake2b256Sum(parts ...[]byte) [blake2b.Size256]byte {
	var material []byte
	for _, p := range parts {
		material = append(material, p...)
	}

	return blake2b.Sum256(material)
}

// ComputeMultihash calculates the digest of data and wraps it in a self-describing multihash.
func ComputeMultihash(code uint64, data []byte) ([]byte, error) {
	if !multihash.ValidCode(code) {
		return nil, fmt.Errorf("invalid multihash code: %d", code)
	}

	digest, err := Hash(code, data)
	if err != nil {
		return nil, err
	}

	return multihash.Encode(digest, code)
}
