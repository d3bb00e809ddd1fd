/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package did turns user supplied DID strings into the canonical did:qsb form.
//
// The following input forms are accepted, in this order:
//
// 1) did:qsb:<base58> (or the legacy did:qbs:<base58>) embedded anywhere in the input.
//
// 2) 32 bytes of hex, either 0x prefixed or as 64 bare hex digits.
//
// 3) A value starting with did:qsb: or did:qbs: whose identifier is not alphanumeric.
//
// 4) A bare base58 identifier.
//
// In every case the identifier must decode to exactly 32 bytes.
package did

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

const (
	// Method is the DID method name.
	Method = "qsb"

	// Prefix is the canonical DID prefix.
	Prefix = "did:" + Method + ":"

	// LegacyPrefix is an alias of Prefix that is rewritten during normalization.
	LegacyPrefix = "did:qbs:"

	// IDLength is the length of a DID identifier in bytes.
	IDLength = 32
)

const (
	reasonEmpty          = "Enter a DID."
	reasonLength         = "DID must decode to 32 bytes."
	reasonHexLength      = "Hex DID must be 32 bytes."
	reasonMalformed      = "Invalid DID format. Use did:qsb:<id>."
	reasonMalformedHex   = "Invalid hex DID."
	reasonUnknownPattern = "Invalid DID format. Use did:qsb:<id> or 0x<32-byte>."
)

var (
	embeddedDIDRegex = regexp.MustCompile(`did:q(?:sb|bs):[A-Za-z0-9]+`)
	bareHexRegex     = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
)

// CanonicalDID is a normalized DID. DID is always Prefix followed by the base58 encoding of DIDIDBytes.
type CanonicalDID struct {
	DID        string
	DIDID      string
	DIDIDBytes [IDLength]byte
}

// FromBytes creates a CanonicalDID from a 32 byte identifier.
func FromBytes(id []byte) (*CanonicalDID, error) {
	if len(id) != IDLength {
		return nil, NewValidationError(InvalidLength, reasonLength)
	}

	d := &CanonicalDID{}
	copy(d.DIDIDBytes[:], id)

	d.DIDID = encoder.EncodeBase58(id)
	d.DID = Prefix + d.DIDID

	return d, nil
}

// MustFromBytes is like FromBytes but panics if id is not 32 bytes long.
func MustFromBytes(id []byte) *CanonicalDID {
	d, err := FromBytes(id)
	if err != nil {
		panic(fmt.Sprintf("create DID: %s", err))
	}

	return d
}

// String returns the DID string.
func (d *CanonicalDID) String() string {
	return d.DID
}

// Bytes returns a copy of the raw identifier.
func (d *CanonicalDID) Bytes() []byte {
	b := make([]byte, IDLength)
	copy(b, d.DIDIDBytes[:])

	return b
}

// Hex returns the 0x hex encoding of the identifier.
func (d *CanonicalDID) Hex() string {
	return encoder.ToHex(d.DIDIDBytes[:])
}

type canonicalDIDJSON struct {
	DID      string `json:"did"`
	DIDID    string `json:"didId"`
	DIDIDHex string `json:"didIdHex"`
}

// MarshalJSON marshals the DID with its identifier in base58 and hex.
func (d *CanonicalDID) MarshalJSON() ([]byte, error) {
	return json.Marshal(&canonicalDIDJSON{
		DID:      d.DID,
		DIDID:    d.DIDID,
		DIDIDHex: d.Hex(),
	})
}

// Normalize returns the canonical form of raw. The returned error is always a *ValidationError.
func Normalize(raw string) (*CanonicalDID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, NewValidationError(EmptyInput, reasonEmpty)
	}

	if embedded := embeddedDIDRegex.FindString(value); embedded != "" {
		return fromDIDString(embedded)
	}

	if encoder.IsHex(value) || bareHexRegex.MatchString(value) {
		return fromHex(value)
	}

	if strings.HasPrefix(value, Prefix) || strings.HasPrefix(value, LegacyPrefix) {
		return fromDIDString(value)
	}

	if encoder.IsBase58(value) {
		return fromBase58(value)
	}

	return nil, NewValidationError(UnrecognizedFormat, reasonUnknownPattern)
}

// IsValid returns true if raw can be normalized.
func IsValid(raw string) bool {
	_, err := Normalize(raw)

	return err == nil
}

func fromDIDString(value string) (*CanonicalDID, error) {
	if strings.HasPrefix(value, LegacyPrefix) {
		value = Prefix + strings.TrimPrefix(value, LegacyPrefix)
	}

	return fromBase58(strings.TrimPrefix(value, Prefix))
}

func fromBase58(id string) (*CanonicalDID, error) {
	decoded, err := encoder.DecodeBase58(id)
	if err != nil {
		return nil, NewValidationError(MalformedEncoding, reasonMalformed)
	}

	if len(decoded) != IDLength {
		return nil, NewValidationError(InvalidLength, reasonLength)
	}

	return FromBytes(decoded)
}

func fromHex(value string) (*CanonicalDID, error) {
	decoded, err := encoder.FromHex(value)
	if err != nil {
		return nil, NewValidationError(MalformedEncoding, reasonMalformedHex)
	}

	if len(decoded) != IDLength {
		return nil, NewValidationError(InvalidLength, reasonHexLength)
	}

	return FromBytes(decoded)
}
