/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signature resolves the signature values returned by wallet extensions into the 0x hex
// form expected by DID pallet calls.
package signature

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

// ErrUnresolvable is returned when a signer result cannot be resolved to a hex signature.
var ErrUnresolvable = errors.New("signature cannot be resolved to hex")

var base64Regex = regexp.MustCompile(`^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`)

// Fields probed on wrapped signer results, in order. A dot separates nested fields.
var wrapperFields = []string{"signature", "signatureHex", "didSignature", "signed", "result.signature"}

// Kind is the shape of a signer result.
type Kind string

// Signature shapes.
const (
	KindHex     Kind = "hex"
	KindBase64  Kind = "base64"
	KindText    Kind = "text"
	KindBytes   Kind = "bytes"
	KindWrapped Kind = "wrapped"
	KindHexer   Kind = "hexer"
)

// Hexer is implemented by signer results that know their own hex form.
type Hexer interface {
	ToHex() string
}

// Value is a classified signer result. It is one of Hex, Base64, Text, RawBytes, Wrapped
// or HexerValue.
type Value interface {
	Kind() Kind
	hex() (string, error)
}

// Hex is a 0x hex string. It is used as is.
type Hex string

// Kind returns KindHex.
func (Hex) Kind() Kind { return KindHex }

func (h Hex) hex() (string, error) { return string(h), nil }

// Base64 is a standard base64 string.
type Base64 string

// Kind returns KindBase64.
func (Base64) Kind() Kind { return KindBase64 }

func (b Base64) hex() (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(string(b))
	if err != nil {
		return encoder.TextToHex(string(b)), nil
	}

	return encoder.ToHex(decoded), nil
}

// Text is any other string. Its UTF-8 bytes are the signature.
type Text string

// Kind returns KindText.
func (Text) Kind() Kind { return KindText }

func (t Text) hex() (string, error) { return encoder.TextToHex(string(t)), nil }

// RawBytes is a byte array.
type RawBytes []byte

// Kind returns KindBytes.
func (RawBytes) Kind() Kind { return KindBytes }

func (r RawBytes) hex() (string, error) { return encoder.ToHex(r), nil }

// Wrapped is an object holding the signature under Field.
type Wrapped struct {
	Field string
	Inner Value
}

// Kind returns KindWrapped.
func (*Wrapped) Kind() Kind { return KindWrapped }

func (w *Wrapped) hex() (string, error) {
	return Normalize(w.Inner)
}

// HexerValue is a result exposing its own hex conversion.
type HexerValue struct {
	Hexer
}

// Kind returns KindHexer.
func (HexerValue) Kind() Kind { return KindHexer }

func (h HexerValue) hex() (string, error) { return h.ToHex(), nil }

// Parse classifies a raw signer result. Strings are classified by shape, byte arrays (including
// arrays of integers) become RawBytes and objects, maps and structs alike, are probed for a known
// signature field. Nil and empty strings are unresolvable.
func Parse(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, ErrUnresolvable
	case Value:
		return v, nil
	case string:
		return parseString(v)
	case []byte:
		return RawBytes(v), nil
	case Hexer:
		return HexerValue{v}, nil
	case []interface{}:
		return parseNumbers(v)
	case map[string]interface{}:
		return parseObject(v)
	default:
		return parseNative(raw)
	}
}

// ParseJSON classifies a JSON encoded signer result.
func ParseJSON(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvable, err)
	}

	return Parse(raw)
}

// Normalize returns the 0x hex form of v.
func Normalize(v Value) (string, error) {
	if v == nil {
		return "", ErrUnresolvable
	}

	return v.hex()
}

// NormalizeRaw parses and normalizes a raw signer result.
func NormalizeRaw(raw interface{}) (string, error) {
	v, err := Parse(raw)
	if err != nil {
		return "", err
	}

	return Normalize(v)
}

// Decode returns the signature bytes of a raw signer result.
func Decode(raw interface{}) ([]byte, error) {
	h, err := NormalizeRaw(raw)
	if err != nil {
		return nil, err
	}

	return encoder.FromHex(h)
}

func parseString(value string) (Value, error) {
	switch {
	case value == "":
		return nil, ErrUnresolvable
	case encoder.IsHex(value):
		return Hex(value), nil
	case base64Regex.MatchString(value):
		return Base64(value), nil
	default:
		return Text(value), nil
	}
}

func parseNumbers(values []interface{}) (Value, error) {
	result := make([]byte, 0, len(values))

	for i, e := range values {
		n, ok := e.(float64)
		if !ok || n < 0 || n > 255 || n != float64(int(n)) {
			return nil, fmt.Errorf("%w: invalid byte at index %d", ErrUnresolvable, i)
		}

		result = append(result, byte(n))
	}

	return RawBytes(result), nil
}

func parseObject(obj map[string]interface{}) (Value, error) {
	for _, field := range wrapperFields {
		candidate, ok := lookup(obj, field)
		if !ok {
			continue
		}

		inner, err := Parse(candidate)
		if err != nil {
			return nil, err
		}

		return &Wrapped{Field: field, Inner: inner}, nil
	}

	return nil, fmt.Errorf("%w: no signature field", ErrUnresolvable)
}

// parseNative classifies Go values that are not in JSON decoded form (typed slices and maps,
// structs, named string types) through their JSON encoding.
func parseNative(raw interface{}) (Value, error) {
	v, ok := jsonValue(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %T", ErrUnresolvable, raw)
	}

	return Parse(v)
}

// jsonValue returns raw in JSON decoded form if it encodes as a string, an array or an object.
func jsonValue(raw interface{}) (interface{}, bool) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}

	switch v.(type) {
	case string, []interface{}, map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

func lookup(obj map[string]interface{}, path string) (interface{}, bool) {
	if path == "result.signature" {
		nested, ok := field(obj, "result")
		if !ok {
			return nil, false
		}

		m, isMap := nested.(map[string]interface{})
		if !isMap {
			v, ok := jsonValue(nested)
			if m, isMap = v.(map[string]interface{}); !ok || !isMap {
				return nil, false
			}
		}

		obj, path = m, "signature"
	}

	return field(obj, path)
}

// field returns the named field, matching case-insensitively when there is no exact match so
// exported struct fields without JSON tags are found.
func field(obj map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := obj[name]; ok {
		return v, v != nil
	}

	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, v != nil
		}
	}

	return nil, false
}
