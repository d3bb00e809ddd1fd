/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package edsigner

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

// Format is the shape of the signer result.
type Format string

// Result formats, matching what wallet extensions return.
const (
	FormatBase64  Format = "base64"
	FormatHex     Format = "hex"
	FormatWrapped Format = "wrapped"
)

// Option is a signer option.
type Option func(s *Signer)

// WithFormat sets the result format.
func WithFormat(format Format) Option {
	return func(s *Signer) {
		s.format = format
	}
}

// Signer signs DID payloads with an Ed25519 key. It stands in for a wallet extension in
// development setups.
type Signer struct {
	privateKey ed25519.PrivateKey
	format     Format
}

// New returns ED25519 signer.
func New(privKey ed25519.PrivateKey, opts ...Option) *Signer {
	s := &Signer{privateKey: privKey, format: FormatBase64}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewFromSeed returns a signer for the 32 byte seed given as 0x hex.
func NewFromSeed(seedHex string, opts ...Option) (*Signer, error) {
	seed, err := encoder.FromHex(seedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes", ed25519.SeedSize)
	}

	return New(ed25519.NewKeyFromSeed(seed), opts...), nil
}

// PublicKey returns the public key.
func (signer *Signer) PublicKey() []byte {
	if len(signer.privateKey) != ed25519.PrivateKeySize {
		return nil
	}

	return []byte(signer.privateKey.Public().(ed25519.PublicKey))
}

// Sign signs payload and returns the signature in the configured format.
func (signer *Signer) Sign(_ context.Context, _ string, payload []byte) (interface{}, error) {
	if l := len(signer.privateKey); l != ed25519.PrivateKeySize {
		return nil, errors.New("invalid private key size")
	}

	sig := ed25519.Sign(signer.privateKey, payload)

	switch signer.format {
	case FormatHex:
		return encoder.ToHex(sig), nil
	case FormatWrapped:
		return map[string]interface{}{"signature": encoder.ToHex(sig)}, nil
	default:
		return base64.StdEncoding.EncodeToString(sig), nil
	}
}
