/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operation

import (
	"errors"
	"fmt"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
	"github.com/trustbloc/qsb-did-core-go/pkg/payload"
)

// Request input errors.
var (
	ErrNoRoles         = errors.New("Select at least one role.") //nolint:stylecheck
	ErrNoMetadataValue = errors.New("Enter a metadata value.")   //nolint:stylecheck
)

// Request holds the user input of a DID mutation. Byte valued fields take 0x hex or plain
// text, as entered in a form.
type Request struct {

	// Action is the DID action to perform.
	Action payload.Action `json:"action"`

	// DID is the target DID in any accepted form.
	DID string `json:"did"`

	// PublicKey is used by AddKey, RevokeKey and UpdateRoles.
	PublicKey string `json:"publicKey,omitempty"`

	// Roles is used by AddKey and UpdateRoles.
	Roles []string `json:"roles,omitempty"`

	// ServiceID is used by AddService and RemoveService.
	ServiceID string `json:"serviceId,omitempty"`

	ServiceType     string `json:"serviceType,omitempty"`
	ServiceEndpoint string `json:"serviceEndpoint,omitempty"`

	// MetadataKey is used by SetMetadata and RemoveMetadata.
	MetadataKey string `json:"metadataKey,omitempty"`

	MetadataValue string `json:"metadataValue,omitempty"`
}

// SchemaRequest registers a schema document.
type SchemaRequest struct {

	// DID is the issuer DID.
	DID string `json:"did"`

	// Document holds the exact schema document bytes.
	Document []byte `json:"document"`

	// URI is where the document was fetched from, if anywhere.
	URI string `json:"uri,omitempty"`
}

// DeprecateRequest deprecates a registered schema.
type DeprecateRequest struct {
	DID      string `json:"did"`
	SchemaID string `json:"schemaId"`
}

// Call builds the unsigned call of the request for the normalized DID d.
func (r *Request) Call(d *did.CanonicalDID) (*extrinsic.Call, error) {
	switch r.Action {
	case payload.AddKey, payload.UpdateRoles:
		publicKey, roles, err := r.keyAndRoles()
		if err != nil {
			return nil, err
		}

		if r.Action == payload.AddKey {
			return extrinsic.AddKey(d, publicKey, roles), nil
		}

		return extrinsic.UpdateRoles(d, publicKey, roles), nil

	case payload.RevokeKey:
		publicKey, err := required("public key", r.PublicKey)
		if err != nil {
			return nil, err
		}

		return extrinsic.RevokeKey(d, publicKey), nil

	case payload.DeactivateDID:
		return extrinsic.DeactivateDID(d), nil

	case payload.AddService:
		return r.addService(d)

	case payload.RemoveService:
		id, err := required("service id", r.ServiceID)
		if err != nil {
			return nil, err
		}

		return extrinsic.RemoveService(d, id), nil

	case payload.SetMetadata:
		return r.setMetadata(d)

	case payload.RemoveMetadata:
		key, err := required("metadata key", r.MetadataKey)
		if err != nil {
			return nil, err
		}

		return extrinsic.RemoveMetadata(d, key), nil

	default:
		return nil, fmt.Errorf("unsupported action: %s", r.Action)
	}
}

func (r *Request) keyAndRoles() ([]byte, []document.Role, error) {
	publicKey, err := required("public key", r.PublicKey)
	if err != nil {
		return nil, nil, err
	}

	if len(r.Roles) == 0 {
		return nil, nil, ErrNoRoles
	}

	roles, err := document.ParseRoles(r.Roles)
	if err != nil {
		return nil, nil, err
	}

	return publicKey, roles, nil
}

func (r *Request) addService(d *did.CanonicalDID) (*extrinsic.Call, error) {
	id, err := required("service id", r.ServiceID)
	if err != nil {
		return nil, err
	}

	serviceType, err := required("service type", r.ServiceType)
	if err != nil {
		return nil, err
	}

	endpoint, err := required("service endpoint", r.ServiceEndpoint)
	if err != nil {
		return nil, err
	}

	return extrinsic.AddService(d, &extrinsic.Service{
		ID:          id,
		ServiceType: serviceType,
		Endpoint:    endpoint,
	}), nil
}

func (r *Request) setMetadata(d *did.CanonicalDID) (*extrinsic.Call, error) {
	key, err := required("metadata key", r.MetadataKey)
	if err != nil {
		return nil, err
	}

	value, err := encoder.InputBytes(r.MetadataValue)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata value: %w", err)
	}

	if len(value) == 0 {
		return nil, ErrNoMetadataValue
	}

	return extrinsic.SetMetadata(d, &extrinsic.MetadataEntry{Key: key, Value: value}), nil
}

func required(name, value string) ([]byte, error) {
	b, err := encoder.InputBytes(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	if len(b) == 0 {
		return nil, fmt.Errorf("missing %s", name)
	}

	return b, nil
}
