/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package extrinsic

import (
	"bytes"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"github.com/trustbloc/qsb-did-core-go/pkg/document"
)

// Arg is a call argument with a canonical SCALE encoding.
type Arg interface {
	Encode() ([]byte, error)
}

// Bytes is a Vec<u8> argument.
type Bytes []byte

// Encode returns the compact length prefixed bytes.
func (b Bytes) Encode() ([]byte, error) {
	return encode(func(e *scale.Encoder) error {
		return encodeBytes(e, b)
	})
}

// Roles is a Vec of key role enum values.
type Roles []document.Role

// Encode encodes every role as its one byte enum index. Unknown roles fail.
func (r Roles) Encode() ([]byte, error) {
	indexes := make([]byte, 0, len(r))

	for _, role := range r {
		idx, err := role.Index()
		if err != nil {
			return nil, err
		}

		indexes = append(indexes, idx)
	}

	return encode(func(e *scale.Encoder) error {
		return encodeBytes(e, indexes)
	})
}

// Service is the service entry argument of add_service.
type Service struct {
	ID          Bytes
	ServiceType Bytes
	Endpoint    Bytes
}

// Encode encodes the fields in declaration order.
func (s *Service) Encode() ([]byte, error) {
	return encode(func(e *scale.Encoder) error {
		return encodeFields(e, s.ID, s.ServiceType, s.Endpoint)
	})
}

// MetadataEntry is the entry argument of set_metadata.
type MetadataEntry struct {
	Key   Bytes
	Value Bytes
}

// Encode encodes the fields in declaration order.
func (m *MetadataEntry) Encode() ([]byte, error) {
	return encode(func(e *scale.Encoder) error {
		return encodeFields(e, m.Key, m.Value)
	})
}

func encode(fn func(e *scale.Encoder) error) ([]byte, error) {
	var buf bytes.Buffer

	if err := fn(scale.NewEncoder(&buf)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeFields(e *scale.Encoder, fields ...[]byte) error {
	for _, f := range fields {
		if err := encodeBytes(e, f); err != nil {
			return err
		}
	}

	return nil
}

func encodeBytes(e *scale.Encoder, b []byte) error {
	if b == nil {
		b = []byte{}
	}

	return e.Encode(b)
}
