/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package extrinsic

import (
	"fmt"

	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
)

// Pallet names.
const (
	DIDPallet    = "Did"
	SchemaPallet = "Schema"
)

// Call methods.
const (
	MethodAddKey          = "add_key"
	MethodRevokeKey       = "revoke_key"
	MethodDeactivateDID   = "deactivate_did"
	MethodAddService      = "add_service"
	MethodRemoveService   = "remove_service"
	MethodSetMetadata     = "set_metadata"
	MethodRemoveMetadata  = "remove_metadata"
	MethodUpdateRoles     = "update_roles"
	MethodRegisterSchema  = "register_schema"
	MethodDeprecateSchema = "deprecate_schema"
)

// Call is a pallet call with its ordered arguments. The last argument of every call is the
// signature slot. Calls built by the constructors below carry an empty signature until
// WithSignature is applied.
type Call struct {
	Pallet string
	Method string
	Args   []Arg
}

// String returns pallet.method.
func (c *Call) String() string {
	return c.Pallet + "." + c.Method
}

// EncodeArgs returns the encoding of every argument in declaration order.
func (c *Call) EncodeArgs() ([][]byte, error) {
	encoded := make([][]byte, len(c.Args))

	for i, arg := range c.Args {
		b, err := arg.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode argument %d of %s: %w", i, c, err)
		}

		encoded[i] = b
	}

	return encoded, nil
}

// Encode returns the concatenated argument encodings.
func (c *Call) Encode() ([]byte, error) {
	encoded, err := c.EncodeArgs()
	if err != nil {
		return nil, err
	}

	var result []byte
	for _, b := range encoded {
		result = append(result, b...)
	}

	return result, nil
}

// WithSignature returns a copy of the call with the signature slot set. The other argument
// values are shared with the original call so they encode identically.
func (c *Call) WithSignature(signature []byte) *Call {
	args := make([]Arg, len(c.Args))
	copy(args, c.Args)

	if len(args) > 0 {
		args[len(args)-1] = Bytes(signature)
	}

	return &Call{Pallet: c.Pallet, Method: c.Method, Args: args}
}

func newDIDCall(method string, d *did.CanonicalDID, args ...Arg) *Call {
	all := append([]Arg{didArg(d)}, args...)

	return &Call{
		Pallet: DIDPallet,
		Method: method,
		Args:   append(all, Bytes{}),
	}
}

func didArg(d *did.CanonicalDID) Bytes {
	return Bytes(d.DID)
}

// AddKey builds add_key(did, public_key, roles, signature).
func AddKey(d *did.CanonicalDID, publicKey []byte, roles []document.Role) *Call {
	return newDIDCall(MethodAddKey, d, Bytes(publicKey), Roles(roles))
}

// RevokeKey builds revoke_key(did, public_key, signature).
func RevokeKey(d *did.CanonicalDID, publicKey []byte) *Call {
	return newDIDCall(MethodRevokeKey, d, Bytes(publicKey))
}

// DeactivateDID builds deactivate_did(did, signature).
func DeactivateDID(d *did.CanonicalDID) *Call {
	return newDIDCall(MethodDeactivateDID, d)
}

// AddService builds add_service(did, service, signature).
func AddService(d *did.CanonicalDID, service *Service) *Call {
	return newDIDCall(MethodAddService, d, service)
}

// RemoveService builds remove_service(did, service_id, signature).
func RemoveService(d *did.CanonicalDID, serviceID []byte) *Call {
	return newDIDCall(MethodRemoveService, d, Bytes(serviceID))
}

// SetMetadata builds set_metadata(did, entry, signature).
func SetMetadata(d *did.CanonicalDID, entry *MetadataEntry) *Call {
	return newDIDCall(MethodSetMetadata, d, entry)
}

// RemoveMetadata builds remove_metadata(did, key, signature).
func RemoveMetadata(d *did.CanonicalDID, key []byte) *Call {
	return newDIDCall(MethodRemoveMetadata, d, Bytes(key))
}

// UpdateRoles builds update_roles(did, public_key, roles, signature).
func UpdateRoles(d *did.CanonicalDID, publicKey []byte, roles []document.Role) *Call {
	return newDIDCall(MethodUpdateRoles, d, Bytes(publicKey), Roles(roles))
}

// RegisterSchema builds register_schema(schema_json, schema_uri, issuer_did, signature). The
// schema document is passed as the exact bytes its id was computed over.
func RegisterSchema(schemaJSON, schemaURI []byte, issuer *did.CanonicalDID) *Call {
	return &Call{
		Pallet: SchemaPallet,
		Method: MethodRegisterSchema,
		Args:   []Arg{Bytes(schemaJSON), Bytes(schemaURI), didArg(issuer), Bytes{}},
	}
}

// DeprecateSchema builds deprecate_schema(schema_id, issuer_did, signature).
func DeprecateSchema(schemaID string, issuer *did.CanonicalDID) *Call {
	return &Call{
		Pallet: SchemaPallet,
		Method: MethodDeprecateSchema,
		Args:   []Arg{Bytes(schemaID), didArg(issuer), Bytes{}},
	}
}
