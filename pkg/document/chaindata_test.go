/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const rpcRecord = `{
	"keys": [
		{"public_key": [1, 2, 3], "roles": ["Authentication", "AssertionMethod"], "revoked": false},
		{"publicKey": "0x0a0b", "roles": [2, {"CapabilityInvocation": null}, 42, "", null], "revoked": true}
	],
	"services": [
		{"id": [108, 105, 110, 107], "serviceType": "0x4c696e6b6564446f6d61696e73", "endpoint": "https://example.com"}
	],
	"metadata": [
		{"key": [110, 97, 109, 101], "value": [255, 254]}
	],
	"deactivated": true,
	"version": 7
}`

func TestParseChainDataJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		data, err := ParseChainDataJSON([]byte(rpcRecord))
		require.NoError(t, err)
		require.NotNil(t, data)

		require.Len(t, data.Keys, 2)
		require.Equal(t, []byte{1, 2, 3}, data.Keys[0].PublicKey)
		require.Equal(t, []Role{RoleAuthentication, RoleAssertionMethod}, data.Keys[0].Roles)
		require.False(t, data.Keys[0].Revoked)

		require.Equal(t, []byte{0x0a, 0x0b}, data.Keys[1].PublicKey)
		require.Equal(t, []Role{RoleKeyAgreement, RoleCapabilityInvocation}, data.Keys[1].Roles)
		require.True(t, data.Keys[1].Revoked)

		require.Len(t, data.Services, 1)
		require.Equal(t, []byte("link"), data.Services[0].ID)
		require.Equal(t, []byte("LinkedDomains"), data.Services[0].ServiceType)
		require.Equal(t, []byte("https://example.com"), data.Services[0].Endpoint)

		require.Len(t, data.Metadata, 1)
		require.Equal(t, []byte("name"), data.Metadata[0].Key)
		require.Equal(t, []byte{0xff, 0xfe}, data.Metadata[0].Value)

		require.True(t, data.Deactivated)
		require.NotNil(t, data.Version)
		require.Equal(t, uint64(7), *data.Version)
	})

	t.Run("null result", func(t *testing.T) {
		data, err := ParseChainDataJSON([]byte(`null`))
		require.NoError(t, err)
		require.Nil(t, data)
	})

	t.Run("empty record", func(t *testing.T) {
		data, err := ParseChainDataJSON([]byte(`{}`))
		require.NoError(t, err)
		require.Empty(t, data.Keys)
		require.Nil(t, data.Version)
		require.False(t, data.Deactivated)
	})

	t.Run("error - invalid JSON", func(t *testing.T) {
		_, err := ParseChainDataJSON([]byte(`{`))
		require.Error(t, err)
	})

	t.Run("error - invalid byte value", func(t *testing.T) {
		_, err := ParseChainDataJSON([]byte(`{"keys": [{"public_key": [1, 256]}]}`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid byte value")
	})

	t.Run("error - wrong type", func(t *testing.T) {
		_, err := ParseChainDataJSON([]byte(`{"deactivated": "yes"}`))
		require.Error(t, err)
	})
}

func TestRoles(t *testing.T) {
	for i, role := range Roles {
		idx, err := role.Index()
		require.NoError(t, err)
		require.Equal(t, uint8(i), idx)
		require.NotEmpty(t, role.Property())

		parsed, err := ParseRole(string(role))
		require.NoError(t, err)
		require.Equal(t, role, parsed)
	}

	_, err := Role("Owner").Index()
	require.Error(t, err)
	require.Empty(t, Role("Owner").Property())

	roles, err := ParseRoles([]string{"KeyAgreement", "CapabilityDelegation"})
	require.NoError(t, err)
	require.Equal(t, []Role{RoleKeyAgreement, RoleCapabilityDelegation}, roles)

	_, err = ParseRoles([]string{"KeyAgreement", "Owner"})
	require.Error(t, err)

	r, ok := roleFromValue(1.5)
	require.False(t, ok)
	require.Empty(t, r)

	r, ok = roleFromValue(uint8(4))
	require.True(t, ok)
	require.Equal(t, RoleCapabilityDelegation, r)
}
