/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package edsigner

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/qsb-did-core-go/pkg/signature"
)

func TestSign(t *testing.T) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := []byte("QSB_DID_DEACTIVATE")

	for _, format := range []Format{FormatBase64, FormatHex, FormatWrapped} {
		t.Run(string(format), func(t *testing.T) {
			signer := New(privateKey, WithFormat(format))

			result, err := signer.Sign(context.Background(), "did:qsb:x", msg)
			require.NoError(t, err)

			sig, err := signature.Decode(result)
			require.NoError(t, err)
			require.True(t, ed25519.Verify(signer.PublicKey(), msg, sig))
		})
	}

	t.Run("invalid key size", func(t *testing.T) {
		signer := New(privateKey)
		signer.privateKey = nil

		result, err := signer.Sign(context.Background(), "did:qsb:x", msg)
		require.Error(t, err)
		require.Nil(t, result)
		require.Contains(t, err.Error(), "invalid private key size")
		require.Nil(t, signer.PublicKey())
	})
}

func TestNewFromSeed(t *testing.T) {
	seed := "0x" + strings.Repeat("01", ed25519.SeedSize)

	s1, err := NewFromSeed(seed)
	require.NoError(t, err)

	s2, err := NewFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, s1.PublicKey(), s2.PublicKey())

	_, err = NewFromSeed("0x0102")
	require.Error(t, err)

	_, err = NewFromSeed("zz")
	require.Error(t, err)
}
