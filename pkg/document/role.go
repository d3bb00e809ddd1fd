/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"fmt"
)

// Role is a capability granted to a DID key.
type Role string

// Key roles. The order of Roles matches the on-chain enum indexes.
const (
	RoleAuthentication       Role = "Authentication"
	RoleAssertionMethod      Role = "AssertionMethod"
	RoleKeyAgreement         Role = "KeyAgreement"
	RoleCapabilityInvocation Role = "CapabilityInvocation"
	RoleCapabilityDelegation Role = "CapabilityDelegation"
)

// Roles lists all roles by enum index.
var Roles = []Role{
	RoleAuthentication,
	RoleAssertionMethod,
	RoleKeyAgreement,
	RoleCapabilityInvocation,
	RoleCapabilityDelegation,
}

// Index returns the on-chain enum index of the role.
func (r Role) Index() (uint8, error) {
	for i, role := range Roles {
		if role == r {
			return uint8(i), nil
		}
	}

	return 0, fmt.Errorf("unknown key role: %s", string(r))
}

// Property returns the DID document relationship property for the role.
func (r Role) Property() string {
	switch r {
	case RoleAuthentication:
		return AuthenticationProperty
	case RoleAssertionMethod:
		return AssertionMethodProperty
	case RoleKeyAgreement:
		return KeyAgreementProperty
	case RoleCapabilityInvocation:
		return InvocationKeyProperty
	case RoleCapabilityDelegation:
		return DelegationKeyProperty
	default:
		return ""
	}
}

// ParseRole parses a role from its name.
func ParseRole(name string) (Role, error) {
	for _, role := range Roles {
		if string(role) == name {
			return role, nil
		}
	}

	return "", fmt.Errorf("unknown key role: %s", name)
}

// ParseRoles parses role names, failing on the first unknown name.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))

	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	return roles, nil
}

// roleFromValue accepts a role as returned by the chain RPC: a name, an enum index or a
// single-key object such as {"Authentication": null}. Unknown values yield false.
func roleFromValue(value interface{}) (Role, bool) {
	switch v := value.(type) {
	case string:
		return roleFromName(v)
	case Role:
		return roleFromName(string(v))
	case float64:
		return roleFromIndex(int(v), v == float64(int(v)))
	case int:
		return roleFromIndex(v, true)
	case uint8:
		return roleFromIndex(int(v), true)
	case map[string]interface{}:
		if len(v) != 1 {
			return "", false
		}

		for key := range v {
			return roleFromName(key)
		}
	}

	return "", false
}

func roleFromIndex(i int, ok bool) (Role, bool) {
	if !ok || i < 0 || i >= len(Roles) {
		return "", false
	}

	return Roles[i], true
}

func roleFromName(name string) (Role, bool) {
	role, err := ParseRole(name)

	return role, err == nil
}
