/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

const (
	// ControllerProperty defines key for controller.
	ControllerProperty = "controller"

	// TypeProperty describes type.
	TypeProperty = "type"

	// PublicKeyMultibaseProperty describes multibase encoded public key.
	PublicKeyMultibaseProperty = "publicKeyMultibase"
)

// VerificationMethod is a public key of the DID together with the roles it was granted.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
	Revoked            bool   `json:"revoked"`
	Roles              []Role `json:"roles"`
}

// HasRole returns true if the method was granted role.
func (vm VerificationMethod) HasRole(role Role) bool {
	for _, r := range vm.Roles {
		if r == role {
			return true
		}
	}

	return false
}
