/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type hexer struct{ value string }

func (h *hexer) ToHex() string { return h.value }

func TestNormalizeRaw(t *testing.T) {
	sig := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	b64 := base64.StdEncoding.EncodeToString(sig)

	tests := []struct {
		name string
		raw  interface{}
		kind Kind
		hex  string
	}{
		{"hex unchanged", "0xDEADbeef", KindHex, "0xDEADbeef"},
		{"empty hex", "0x", KindHex, "0x"},
		{"base64", b64, KindBase64, "0xdeadbeef01"},
		{"text", "not base64!", KindText, "0x6e6f742062617365363421"},
		{"bytes", sig, KindBytes, "0xdeadbeef01"},
		{"empty bytes", []byte{}, KindBytes, "0x"},
		{"number array", []interface{}{float64(1), float64(255)}, KindBytes, "0x01ff"},
		{"hexer", &hexer{value: "0x0102"}, KindHexer, "0x0102"},
		{"wrapped signature", map[string]interface{}{"signature": "0xabcd"}, KindWrapped, "0xabcd"},
		{
			"wrapped order",
			map[string]interface{}{"signed": "0x02", "signatureHex": "0x01"},
			KindWrapped, "0x01",
		},
		{
			"nil field skipped",
			map[string]interface{}{"signature": nil, "didSignature": b64},
			KindWrapped, "0xdeadbeef01",
		},
		{
			"nested result",
			map[string]interface{}{"result": map[string]interface{}{"signature": []interface{}{float64(7)}}},
			KindWrapped, "0x07",
		},
		{
			"recursive wrapping",
			map[string]interface{}{"signature": map[string]interface{}{"signatureHex": "0x09"}},
			KindWrapped, "0x09",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.kind, v.Kind())

			h, err := NormalizeRaw(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.hex, h)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	h, err := NormalizeRaw("0x0a0b0c")
	require.NoError(t, err)

	again, err := NormalizeRaw(h)
	require.NoError(t, err)
	require.Equal(t, h, again)
}

func TestNormalize_Base64Bytes(t *testing.T) {
	for _, b := range [][]byte{{0}, {1, 2}, {1, 2, 3}, make([]byte, 2420)} {
		h, err := NormalizeRaw(base64.StdEncoding.EncodeToString(b))
		require.NoError(t, err)

		decoded, err := Decode(base64.StdEncoding.EncodeToString(b))
		require.NoError(t, err)
		require.Equal(t, b, decoded)
		require.Len(t, h, 2+2*len(b))
	}
}

func TestNormalize_Unresolvable(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
	}{
		{"nil", nil},
		{"empty string", ""},
		{"number", float64(12)},
		{"bool", true},
		{"object without signature", map[string]interface{}{"foo": "0x01"}},
		{"empty wrapped string", map[string]interface{}{"signature": ""}},
		{"result without signature", map[string]interface{}{"result": "0x01"}},
		{"invalid byte", []interface{}{float64(256)}},
		{"non numeric byte", []interface{}{"a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeRaw(tc.raw)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrUnresolvable))
		})
	}

	_, err := Normalize(nil)
	require.True(t, errors.Is(err, ErrUnresolvable))

	_, err = Normalize(&Wrapped{Field: "signature"})
	require.True(t, errors.Is(err, ErrUnresolvable))
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"result": {"signature": "0x1234"}}`))
	require.NoError(t, err)

	w, ok := v.(*Wrapped)
	require.True(t, ok)
	require.Equal(t, "result.signature", w.Field)
	require.Equal(t, Hex("0x1234"), w.Inner)

	v, err = ParseJSON([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	require.Equal(t, RawBytes{1, 2, 3}, v)

	_, err = ParseJSON([]byte(`null`))
	require.True(t, errors.Is(err, ErrUnresolvable))

	_, err = ParseJSON([]byte(`{`))
	require.True(t, errors.Is(err, ErrUnresolvable))
}

func TestParse_Value(t *testing.T) {
	v, err := Parse(Base64("AQI="))
	require.NoError(t, err)
	require.Equal(t, KindBase64, v.Kind())

	h, err := Normalize(v)
	require.NoError(t, err)
	require.Equal(t, "0x0102", h)
}

type walletResult struct {
	Signature string
}

type taggedResult struct {
	Result struct {
		Sig []byte `json:"signature"`
	} `json:"result"`
}

type signatureText string

func TestNormalizeRaw_NativeValues(t *testing.T) {
	tagged := taggedResult{}
	tagged.Result.Sig = []byte{0xca, 0xfe}

	tests := []struct {
		name     string
		raw      interface{}
		kind     Kind
		expected string
	}{
		{"string map", map[string]string{"signature": "0x0102"}, KindWrapped, "0x0102"},
		{"int slice", []int{1, 2, 3}, KindBytes, "0x010203"},
		{"uint16 slice", []uint16{255, 0}, KindBytes, "0xff00"},
		{"byte array", [2]byte{0xab, 0xcd}, KindBytes, "0xabcd"},
		{"untagged struct", walletResult{Signature: "0x0a0b"}, KindWrapped, "0x0a0b"},
		{"struct pointer", &walletResult{Signature: "yv66vg=="}, KindWrapped, "0xcafebabe"},
		{"nested struct", tagged, KindWrapped, "0xcafe"},
		{"named string", signatureText("0x0c"), KindHex, "0x0c"},
		{"nested native value", map[string]interface{}{"signed": []int{7}}, KindWrapped, "0x07"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.kind, v.Kind())

			h, err := NormalizeRaw(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.expected, h)
		})
	}

	for _, raw := range []interface{}{42, []int{300}, struct{ Other string }{"0x01"}, make(chan int)} {
		_, err := NormalizeRaw(raw)
		require.True(t, errors.Is(err, ErrUnresolvable), "%T", raw)
	}
}
