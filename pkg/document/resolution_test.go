/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResolutionResult(t *testing.T) {
	doc := &DIDDocument{}

	result := NewResolutionResult("did:qsb:abc", doc, &ChainData{})
	require.Equal(t, ResolutionContext, result.Context)
	require.Same(t, doc, result.Document)
	require.Equal(t, "did:qsb:abc", result.DocumentMetadata[CanonicalIDProperty])
	require.NotContains(t, result.DocumentMetadata, VersionProperty)
	require.False(t, result.Deactivated())

	version := uint64(3)

	result = NewResolutionResult("did:qsb:abc", doc, &ChainData{Deactivated: true, Version: &version})
	require.Equal(t, uint64(3), result.DocumentMetadata[VersionProperty])
	require.True(t, result.Deactivated())

	require.False(t, (&ResolutionResult{}).Deactivated())
}
