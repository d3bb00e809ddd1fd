/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didtransformer

import (
	"fmt"

	"github.com/multiformats/go-multibase"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

const (
	didContext = "https://www.w3.org/ns/did/v1"

	// KeyTypeMLDSA44 is the verification method type of DID keys.
	KeyTypeMLDSA44 = "ML-DSA-44"

	defaultServiceName = "service"
)

// Option is a transformer option.
type Option func(opts *Transformer)

// WithMethodContext sets optional method context(s).
func WithMethodContext(ctx []string) Option {
	return func(opts *Transformer) {
		opts.methodCtx = ctx
	}
}

// WithKeyType overrides the verification method type.
func WithKeyType(keyType string) Option {
	return func(opts *Transformer) {
		opts.keyType = keyType
	}
}

// Transformer is responsible for transforming an on-chain DID record into a DID document.
type Transformer struct {
	methodCtx []string // used for setting additional contexts during resolution
	keyType   string
}

// New creates a new DID Transformer.
func New(opts ...Option) *Transformer {
	transformer := &Transformer{keyType: KeyTypeMLDSA44}

	// apply options
	for _, opt := range opts {
		opt(transformer)
	}

	return transformer
}

// TransformDocument builds the DID document for d from the chain record. Nil is returned if
// either argument is nil.
func (t *Transformer) TransformDocument(d *did.CanonicalDID, data *document.ChainData) *document.DIDDocument {
	if d == nil || data == nil {
		return nil
	}

	doc := &document.DIDDocument{
		Context:     append([]string{didContext}, t.methodCtx...),
		ID:          d.DID,
		Version:     data.Version,
		Deactivated: data.Deactivated,
	}

	t.processKeys(data, doc)
	processServices(data, doc)
	processMetadata(data, doc)

	return doc
}

// processKeys adds a verification method per key and references it from the relationship
// section of every role the key holds.
func (t *Transformer) processKeys(data *document.ChainData, doc *document.DIDDocument) {
	doc.VerificationMethod = make([]document.VerificationMethod, 0, len(data.Keys))
	doc.Authentication = make([]string, 0)
	doc.AssertionMethod = make([]string, 0)
	doc.KeyAgreement = make([]string, 0)
	doc.CapabilityInvocation = make([]string, 0)
	doc.CapabilityDelegation = make([]string, 0)

	for i, key := range data.Keys {
		id := fmt.Sprintf("%s#keys-%d", doc.ID, i+1)

		roles := key.Roles
		if roles == nil {
			roles = []document.Role{}
		}

		doc.VerificationMethod = append(doc.VerificationMethod, document.VerificationMethod{
			ID:                 id,
			Type:               t.keyType,
			Controller:         doc.ID,
			PublicKeyMultibase: publicKeyMultibase(key.PublicKey),
			Revoked:            key.Revoked,
			Roles:              roles,
		})

		for _, role := range roles {
			switch role {
			case document.RoleAuthentication:
				doc.Authentication = appendOnce(doc.Authentication, id)
			case document.RoleAssertionMethod:
				doc.AssertionMethod = appendOnce(doc.AssertionMethod, id)
			case document.RoleKeyAgreement:
				doc.KeyAgreement = appendOnce(doc.KeyAgreement, id)
			case document.RoleCapabilityInvocation:
				doc.CapabilityInvocation = appendOnce(doc.CapabilityInvocation, id)
			case document.RoleCapabilityDelegation:
				doc.CapabilityDelegation = appendOnce(doc.CapabilityDelegation, id)
			}
		}
	}
}

func processServices(data *document.ChainData, doc *document.DIDDocument) {
	doc.Service = make([]document.Service, 0, len(data.Services))

	for _, sv := range data.Services {
		name := encoder.BytesToText(sv.ID)
		if name == "" {
			name = defaultServiceName
		}

		doc.Service = append(doc.Service, document.Service{
			ID:              doc.ID + "#" + name,
			Type:            encoder.BytesToText(sv.ServiceType),
			ServiceEndpoint: encoder.BytesToText(sv.Endpoint),
		})
	}
}

func processMetadata(data *document.ChainData, doc *document.DIDDocument) {
	doc.Metadata = make([]document.Metadata, 0, len(data.Metadata))

	for _, entry := range data.Metadata {
		doc.Metadata = append(doc.Metadata, document.Metadata{
			Key:   encoder.BytesToText(entry.Key),
			Value: encoder.BytesToText(entry.Value),
		})
	}
}

func publicKeyMultibase(key []byte) string {
	// base58btc is a known encoding so Encode cannot fail
	value, err := multibase.Encode(multibase.Base58BTC, key)
	if err != nil {
		return ""
	}

	return value
}

func appendOnce(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}

	return append(values, value)
}
