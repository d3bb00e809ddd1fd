/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

const (

	// ContextProperty defines key for context property.
	ContextProperty = "@context"

	// IDProperty describes id key.
	IDProperty = "id"

	// ServiceProperty defines key for service property.
	ServiceProperty = "service"

	// MetadataProperty defines key for metadata property.
	MetadataProperty = "metadata"

	// VerificationMethodProperty defines key for verification method.
	VerificationMethodProperty = "verificationMethod"

	// AuthenticationProperty defines key for authentication property.
	AuthenticationProperty = "authentication"

	// AssertionMethodProperty defines key for assertion method property.
	AssertionMethodProperty = "assertionMethod"

	// KeyAgreementProperty defines key for key agreement property.
	KeyAgreementProperty = "keyAgreement"

	// DelegationKeyProperty defines key for delegation key property.
	DelegationKeyProperty = "capabilityDelegation"

	// InvocationKeyProperty defines key for invocation key property.
	InvocationKeyProperty = "capabilityInvocation"
)

// DIDDocument is the DID document view of an on-chain DID record. It is rebuilt on every
// resolution and never updated in place.
type DIDDocument struct {
	Context              []string             `json:"@context"`
	ID                   string               `json:"id"`
	Version              *uint64              `json:"version"`
	Deactivated          bool                 `json:"deactivated"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod"`
	Authentication       []string             `json:"authentication"`
	AssertionMethod      []string             `json:"assertionMethod"`
	KeyAgreement         []string             `json:"keyAgreement"`
	CapabilityInvocation []string             `json:"capabilityInvocation"`
	CapabilityDelegation []string             `json:"capabilityDelegation"`
	Service              []Service            `json:"service"`
	Metadata             []Metadata           `json:"metadata"`
}

// Metadata is a decoded metadata entry.
type Metadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Relationship returns the method ids listed under the given relationship property,
// for example AuthenticationProperty.
func (doc *DIDDocument) Relationship(property string) []string {
	switch property {
	case AuthenticationProperty:
		return doc.Authentication
	case AssertionMethodProperty:
		return doc.AssertionMethod
	case KeyAgreementProperty:
		return doc.KeyAgreement
	case InvocationKeyProperty:
		return doc.CapabilityInvocation
	case DelegationKeyProperty:
		return doc.CapabilityDelegation
	default:
		return nil
	}
}

// VerificationMethodByID returns the verification method with the given id.
func (doc *DIDDocument) VerificationMethodByID(id string) (VerificationMethod, bool) {
	for _, vm := range doc.VerificationMethod {
		if vm.ID == id {
			return vm, true
		}
	}

	return VerificationMethod{}, false
}

// ActiveVerificationMethods returns the verification methods that have not been revoked.
func (doc *DIDDocument) ActiveVerificationMethods() []VerificationMethod {
	var result []VerificationMethod

	for _, vm := range doc.VerificationMethod {
		if !vm.Revoked {
			result = append(result, vm)
		}
	}

	return result
}

// MetadataValue returns the value stored under key.
func (doc *DIDDocument) MetadataValue(key string) (string, bool) {
	for _, m := range doc.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}

	return "", false
}
