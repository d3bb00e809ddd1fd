/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

// ResolutionContext is the JSON-LD context of a resolution result.
const ResolutionContext = "https://w3id.org/did-resolution/v1"

// Document metadata keys.
const (
	DeactivatedProperty = "deactivated"
	VersionProperty     = "versionId"
	CanonicalIDProperty = "canonicalId"
)

// ResolutionResult is a resolved DID document with its metadata.
type ResolutionResult struct {
	Context          string                 `json:"@context"`
	Document         *DIDDocument           `json:"didDocument"`
	DocumentMetadata map[string]interface{} `json:"didDocumentMetadata,omitempty"`
}

// NewResolutionResult wraps doc, projected from data, in a resolution result. The version is
// only reported when the chain record carries one.
func NewResolutionResult(canonicalID string, doc *DIDDocument, data *ChainData) *ResolutionResult {
	metadata := map[string]interface{}{
		DeactivatedProperty: data.Deactivated,
		CanonicalIDProperty: canonicalID,
	}

	if data.Version != nil {
		metadata[VersionProperty] = *data.Version
	}

	return &ResolutionResult{
		Context:          ResolutionContext,
		Document:         doc,
		DocumentMetadata: metadata,
	}
}

// Deactivated reports whether the resolved DID is deactivated.
func (r *ResolutionResult) Deactivated() bool {
	deactivated, ok := r.DocumentMetadata[DeactivatedProperty].(bool)

	return ok && deactivated
}
