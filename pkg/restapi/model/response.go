/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package model

// PayloadResponse describes the signable payload of a DID call.
type PayloadResponse struct {
	Action  string   `json:"action"`
	DID     string   `json:"did"`
	Prefix  string   `json:"prefix"`
	Args    []string `json:"args"`
	Payload string   `json:"payload"`
}

// SignatureResponse holds a normalized signature.
type SignatureResponse struct {
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
}

// SchemaIDResponse holds the identifier of a schema document.
type SchemaIDResponse struct {
	SchemaID string `json:"schemaId"`
	Hex      string `json:"hex"`

	// Digest is the BLAKE2b-256 multihash of the document bytes.
	Digest string `json:"digest"`
}
