/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDIDDocument(t *testing.T) {
	doc := &DIDDocument{
		ID: "did:qsb:abc",
		VerificationMethod: []VerificationMethod{
			{ID: "did:qsb:abc#keys-1", Roles: []Role{RoleAuthentication}},
			{ID: "did:qsb:abc#keys-2", Revoked: true},
		},
		Authentication:       []string{"did:qsb:abc#keys-1"},
		AssertionMethod:      []string{},
		KeyAgreement:         []string{},
		CapabilityInvocation: []string{},
		CapabilityDelegation: []string{"did:qsb:abc#keys-2"},
		Metadata:             []Metadata{{Key: "name", Value: "alice"}},
	}

	require.Equal(t, []string{"did:qsb:abc#keys-1"}, doc.Relationship(AuthenticationProperty))
	require.Equal(t, []string{"did:qsb:abc#keys-2"}, doc.Relationship(RoleCapabilityDelegation.Property()))
	require.Empty(t, doc.Relationship(KeyAgreementProperty))
	require.Nil(t, doc.Relationship("unknown"))

	vm, ok := doc.VerificationMethodByID("did:qsb:abc#keys-1")
	require.True(t, ok)
	require.True(t, vm.HasRole(RoleAuthentication))
	require.False(t, vm.HasRole(RoleKeyAgreement))

	_, ok = doc.VerificationMethodByID("did:qsb:abc#keys-3")
	require.False(t, ok)

	require.Len(t, doc.ActiveVerificationMethods(), 1)

	v, ok := doc.MetadataValue("name")
	require.True(t, ok)
	require.Equal(t, "alice", v)

	_, ok = doc.MetadataValue("missing")
	require.False(t, ok)

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "did:qsb:abc", m[IDProperty])
	require.Contains(t, m, ContextProperty)
	require.Contains(t, m, VerificationMethodProperty)
	require.Nil(t, m["version"])
}
