/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

// ErrIssuerMismatch is returned when a DID other than the schema issuer acts on a schema.
var ErrIssuerMismatch = errors.New("Issuer DID mismatch for selected schema.") //nolint:stylecheck

// RawRecord is a schema record as SCALE encoded in the schema pallet storage.
type RawRecord struct {
	Version    uint32
	Deprecated bool
	IssuerDID  []byte
	SchemaHash []byte
	SchemaURI  []byte
}

// Record is the readable view of a schema record.
type Record struct {
	SchemaID      string `json:"schemaId"`
	Version       uint32 `json:"version"`
	Deprecated    bool   `json:"deprecated"`
	IssuerDIDHex  string `json:"issuerDidHex"`
	IssuerDIDText string `json:"issuerDidText"`
	SchemaHash    string `json:"schemaHash"`
	SchemaURIHex  string `json:"schemaUriHex"`
	SchemaURIText string `json:"schemaUriText"`
}

// DecodeRecord decodes a SCALE encoded schema record.
func DecodeRecord(data []byte) (*RawRecord, error) {
	record := &RawRecord{}

	if err := scale.NewDecoder(bytes.NewReader(data)).Decode(record); err != nil {
		return nil, fmt.Errorf("decode schema record: %w", err)
	}

	return record, nil
}

// EncodeRecord SCALE encodes a schema record.
func EncodeRecord(record *RawRecord) ([]byte, error) {
	var buf bytes.Buffer

	if err := scale.NewEncoder(&buf).Encode(*record); err != nil {
		return nil, fmt.Errorf("encode schema record: %w", err)
	}

	return buf.Bytes(), nil
}

// ProjectRecord returns the readable view of a record. Issuer DID and URI are decoded as text
// when they hold UTF-8, otherwise their hex form is kept.
func ProjectRecord(id *ID, raw *RawRecord) *Record {
	if id == nil || raw == nil {
		return nil
	}

	return &Record{
		SchemaID:      id.SchemaID,
		Version:       raw.Version,
		Deprecated:    raw.Deprecated,
		IssuerDIDHex:  encoder.ToHex(raw.IssuerDID),
		IssuerDIDText: encoder.BytesToText(raw.IssuerDID),
		SchemaHash:    encoder.ToHex(raw.SchemaHash),
		SchemaURIHex:  encoder.ToHex(raw.SchemaURI),
		SchemaURIText: encoder.BytesToText(raw.SchemaURI),
	}
}

// IssuerHex returns the issuer argument of schema calls for d: the hex of the DID string.
func IssuerHex(d *did.CanonicalDID) string {
	return encoder.TextToHex(d.DID)
}

// IsIssuer returns true if d issued the record. Hex values are compared case-insensitively.
func (r *Record) IsIssuer(d *did.CanonicalDID) bool {
	return strings.EqualFold(r.IssuerDIDHex, IssuerHex(d))
}

// CheckIssuer fails with ErrIssuerMismatch when the record names an issuer other than d. A record
// without an issuer passes.
func CheckIssuer(r *Record, d *did.CanonicalDID) error {
	if r == nil || r.IssuerDIDHex == "" || r.IssuerDIDHex == encoder.HexPrefix {
		return nil
	}

	if !r.IsIssuer(d) {
		return ErrIssuerMismatch
	}

	return nil
}

// FilterByIssuer returns the records issued by d, keeping their order.
func FilterByIssuer(records []*Record, d *did.CanonicalDID) []*Record {
	var result []*Record

	for _, r := range records {
		if r != nil && r.IssuerDIDHex != encoder.HexPrefix && r.IsIssuer(d) {
			result = append(result, r)
		}
	}

	return result
}
