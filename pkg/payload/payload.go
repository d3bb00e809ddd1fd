/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package payload builds the byte strings DID controllers sign for DID pallet calls. The chain
// rebuilds the same bytes to verify the signature, so prefixes and argument order are part of
// the wire contract.
package payload

import (
	"fmt"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
)

// Action is a mutating DID action.
type Action string

// DID actions.
const (
	AddKey         Action = "AddKey"
	RevokeKey      Action = "RevokeKey"
	DeactivateDID  Action = "DeactivateDid"
	AddService     Action = "AddService"
	RemoveService  Action = "RemoveService"
	SetMetadata    Action = "SetMetadata"
	RemoveMetadata Action = "RemoveMetadata"
	UpdateRoles    Action = "UpdateRoles"
)

// Action prefixes.
const (
	AddKeyPrefix         = "QSB_DID_ADD_KEY"
	RevokeKeyPrefix      = "QSB_DID_REVOKE_KEY"
	DeactivatePrefix     = "QSB_DID_DEACTIVATE"
	AddServicePrefix     = "QSB_DID_ADD_SERVICE"
	RemoveServicePrefix  = "QSB_DID_REMOVE_SERVICE"
	SetMetadataPrefix    = "QSB_DID_SET_METADATA"
	RemoveMetadataPrefix = "QSB_DID_REMOVE_METADATA"
	UpdateRolesPrefix    = "QSB_DID_UPDATE_ROLES"
)

var prefixes = map[Action]string{
	AddKey:         AddKeyPrefix,
	RevokeKey:      RevokeKeyPrefix,
	DeactivateDID:  DeactivatePrefix,
	AddService:     AddServicePrefix,
	RemoveService:  RemoveServicePrefix,
	SetMetadata:    SetMetadataPrefix,
	RemoveMetadata: RemoveMetadataPrefix,
	UpdateRoles:    UpdateRolesPrefix,
}

var methods = map[Action]string{
	AddKey:         extrinsic.MethodAddKey,
	RevokeKey:      extrinsic.MethodRevokeKey,
	DeactivateDID:  extrinsic.MethodDeactivateDID,
	AddService:     extrinsic.MethodAddService,
	RemoveService:  extrinsic.MethodRemoveService,
	SetMetadata:    extrinsic.MethodSetMetadata,
	RemoveMetadata: extrinsic.MethodRemoveMetadata,
	UpdateRoles:    extrinsic.MethodUpdateRoles,
}

// Actions lists all DID actions.
var Actions = []Action{AddKey, RevokeKey, DeactivateDID, AddService, RemoveService, SetMetadata, RemoveMetadata, UpdateRoles}

// Prefix returns the prefix of the action.
func (a Action) Prefix() (string, error) {
	p, ok := prefixes[a]
	if !ok {
		return "", fmt.Errorf("unsupported action: %s", string(a))
	}

	return p, nil
}

// Method returns the DID pallet method of the action.
func (a Action) Method() string {
	return methods[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	a := Action(name)
	if _, ok := prefixes[a]; !ok {
		return "", fmt.Errorf("unsupported action: %s", name)
	}

	return a, nil
}

// Payload is a signable payload: an ASCII prefix followed by argument encodings.
type Payload struct {
	Prefix string
	Args   [][]byte
}

// Bytes returns prefix || args with no separators or length prefixes.
func (p *Payload) Bytes() []byte {
	return Build(p.Prefix, p.Args...)
}

// Hex returns the 0x hex encoding of Bytes.
func (p *Payload) Hex() string {
	return encoder.ToHex(p.Bytes())
}

// Build concatenates the ASCII prefix with every argument encoding in order.
func Build(prefix string, args ...[]byte) []byte {
	return encoder.Concat(append([][]byte{[]byte(prefix)}, args...)...)
}

// New returns the payload of a DID call: the action prefix followed by the encodings of every
// call argument except the trailing signature. SetMetadata takes arguments 0 and 1 explicitly,
// matching how the chain verifies it.
func New(action Action, call *extrinsic.Call) (*Payload, error) {
	prefix, err := action.Prefix()
	if err != nil {
		return nil, err
	}

	if call.Method != action.Method() {
		return nil, fmt.Errorf("call %s does not match action %s", call, action)
	}

	encoded, err := call.EncodeArgs()
	if err != nil {
		return nil, &EncodingError{Action: action, Err: err}
	}

	if action == SetMetadata {
		if len(encoded) < 2 {
			return nil, &EncodingError{Action: action, Err: fmt.Errorf("expected did and entry arguments, got %d", len(encoded))}
		}

		return &Payload{Prefix: prefix, Args: encoded[:2]}, nil
	}

	if len(encoded) == 0 {
		return &Payload{Prefix: prefix}, nil
	}

	return &Payload{Prefix: prefix, Args: encoded[:len(encoded)-1]}, nil
}

// ForCall returns the signable bytes of a DID call.
func ForCall(action Action, call *extrinsic.Call) ([]byte, error) {
	p, err := New(action, call)
	if err != nil {
		return nil, err
	}

	return p.Bytes(), nil
}

// EncodingError is returned when a call argument cannot be encoded. No signature should be
// requested for the call.
type EncodingError struct {
	Action Action
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s payload: %s", e.Action, e.Err)
}

// Unwrap returns the encoding failure.
func (e *EncodingError) Unwrap() error {
	return e.Err
}
