/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package encoder contains the byte, hex, text and base58 conversions shared by the DID,
// payload, signature and schema packages.
package encoder

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/btcsuite/btcutil/base58"
)

// HexPrefix is the prefix of hex encoded values.
const HexPrefix = "0x"

var (
	prefixedHexRegex = regexp.MustCompile(`^0x[0-9a-fA-F]*$`)
	base58Regex      = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`)
)

// ErrInvalidBase58 is returned when a value contains characters outside of the base58 alphabet.
var ErrInvalidBase58 = errors.New("invalid base58 string")

// ToHex encodes bytes as lower case hex with the 0x prefix.
func ToHex(data []byte) string {
	return HexPrefix + hex.EncodeToString(data)
}

// IsHex returns true if value is a 0x prefixed hex string with an even number of digits.
func IsHex(value string) bool {
	return prefixedHexRegex.MatchString(value) && len(value)%2 == 0
}

// FromHex decodes a hex string with or without the 0x prefix.
func FromHex(value string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(value, HexPrefix))
}

// IsBase58 returns true if value only contains base58 characters.
func IsBase58(value string) bool {
	return base58Regex.MatchString(value)
}

// EncodeBase58 encodes bytes using the bitcoin base58 alphabet.
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes a base58 string. An error is returned for empty input or characters
// outside of the alphabet.
func DecodeBase58(value string) ([]byte, error) {
	if !IsBase58(value) {
		return nil, ErrInvalidBase58
	}

	return base58.Decode(value), nil
}

// BytesToText decodes bytes as UTF-8 text, falling back to 0x hex when the bytes are not valid UTF-8.
func BytesToText(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if utf8.Valid(data) {
		return string(data)
	}

	return ToHex(data)
}

// TextToHex returns the 0x hex encoding of the UTF-8 bytes of value.
func TextToHex(value string) string {
	return ToHex([]byte(value))
}

// HexToText decodes a 0x hex value into text. Values that are not hex, or that do not hold valid
// UTF-8, are returned unchanged.
func HexToText(value string) string {
	if !IsHex(value) {
		return value
	}

	data, err := FromHex(value)
	if err != nil || !utf8.Valid(data) {
		return value
	}

	return string(data)
}

// InputBytes converts user input into call argument bytes: hex input is decoded, anything else
// is taken as UTF-8 text. Blank input returns nil.
func InputBytes(value string) ([]byte, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	if IsHex(trimmed) {
		return FromHex(trimmed)
	}

	return []byte(trimmed), nil
}

// Concat concatenates byte slices into a new slice.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}

	result := make([]byte, 0, size)
	for _, p := range parts {
		result = append(result, p...)
	}

	return result
}
