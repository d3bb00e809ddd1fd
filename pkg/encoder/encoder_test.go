/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	require.Equal(t, "0x48656c6c6f", ToHex([]byte("Hello")))
	require.Equal(t, "0x", ToHex(nil))

	require.True(t, IsHex("0x"))
	require.True(t, IsHex("0xABcd"))
	require.False(t, IsHex("0xabc"))
	require.False(t, IsHex("abcd"))
	require.False(t, IsHex("0xzz"))

	b, err := FromHex("0x0102")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, b)

	b, err = FromHex("0102")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, b)

	_, err = FromHex("0xzz")
	require.Error(t, err)
}

func TestBase58(t *testing.T) {
	data := []byte{0, 1, 2, 3, 255}

	encoded := EncodeBase58(data)
	require.True(t, IsBase58(encoded))

	decoded, err := DecodeBase58(encoded)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	for _, invalid := range []string{"", "0abc", "Oabc", "Iabc", "labc", "ab cd", "ab!"} {
		_, err = DecodeBase58(invalid)
		require.ErrorIs(t, err, ErrInvalidBase58, invalid)
	}
}

func TestText(t *testing.T) {
	require.Equal(t, "", BytesToText(nil))
	require.Equal(t, "https://example.com", BytesToText([]byte("https://example.com")))
	require.Equal(t, "0xfffe", BytesToText([]byte{0xff, 0xfe}))

	require.Equal(t, "0x6869", TextToHex("hi"))

	require.Equal(t, "hi", HexToText("0x6869"))
	require.Equal(t, "plain", HexToText("plain"))
	require.Equal(t, "0xfffe", HexToText("0xfffe"))
}

func TestInputBytes(t *testing.T) {
	b, err := InputBytes("  ")
	require.NoError(t, err)
	require.Nil(t, b)

	b, err = InputBytes(" 0x0a0b ")
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a, 0x0b}, b)

	b, err = InputBytes("service-1")
	require.NoError(t, err)
	require.Equal(t, []byte("service-1"), b)
}

func TestConcat(t *testing.T) {
	require.Equal(t, []byte{1, 2, 3}, Concat([]byte{1}, nil, []byte{2, 3}))
	require.Empty(t, Concat())
}
