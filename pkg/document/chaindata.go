/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
)

// KeyRecord is a DID key as stored on chain.
type KeyRecord struct {
	PublicKey []byte `mapstructure:"public_key"`
	Roles     []Role `mapstructure:"roles"`
	Revoked   bool   `mapstructure:"revoked"`
}

// ServiceRecord is a DID service as stored on chain.
type ServiceRecord struct {
	ID          []byte `mapstructure:"id"`
	ServiceType []byte `mapstructure:"service_type"`
	Endpoint    []byte `mapstructure:"endpoint"`
}

// MetadataEntry is a DID metadata entry as stored on chain.
type MetadataEntry struct {
	Key   []byte `mapstructure:"key"`
	Value []byte `mapstructure:"value"`
}

// ChainData is the raw DID record returned by the chain.
type ChainData struct {
	Keys        []KeyRecord     `mapstructure:"keys"`
	Services    []ServiceRecord `mapstructure:"services"`
	Metadata    []MetadataEntry `mapstructure:"metadata"`
	Deactivated bool            `mapstructure:"deactivated"`
	Version     *uint64         `mapstructure:"version"`
}

// field aliases seen in RPC results, mapped to the snake case names used above.
var fieldAliases = map[string]string{
	"publicKey":   "public_key",
	"serviceType": "service_type",
}

var (
	bytesType = reflect.TypeOf([]byte(nil))
	rolesType = reflect.TypeOf([]Role(nil))
	mapType   = reflect.TypeOf(map[string]interface{}(nil))
)

// ParseChainDataJSON parses the JSON result of the did_getByString RPC. A JSON null yields nil.
func ParseChainDataJSON(data []byte) (*ChainData, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal DID record: %w", err)
	}

	if raw == nil {
		return nil, nil
	}

	return ParseChainData(raw)
}

// ParseChainData decodes a generic DID record (as unmarshalled from JSON) into ChainData.
// Byte fields may be arrays of numbers, 0x hex strings or plain text. Roles may be names,
// enum indexes or single-key objects; unknown roles are dropped.
func ParseChainData(raw interface{}) (*ChainData, error) {
	result := &ChainData{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			aliasHook,
			bytesHook,
			rolesHook,
		),
		Result: result,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode DID record: %w", err)
	}

	return result, nil
}

func aliasHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from != mapType || to.Kind() != reflect.Struct {
		return data, nil
	}

	m, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}

	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = v
	}

	for alias, name := range fieldAliases {
		if v, ok := m[alias]; ok {
			if _, exists := m[name]; !exists {
				result[name] = v
			}
		}
	}

	return result, nil
}

func bytesHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	if to != bytesType {
		return data, nil
	}

	switch v := data.(type) {
	case nil:
		return []byte(nil), nil
	case []byte:
		return v, nil
	case string:
		if encoder.IsHex(v) {
			return encoder.FromHex(v)
		}

		return []byte(v), nil
	case []interface{}:
		return bytesFromNumbers(v)
	default:
		return data, nil
	}
}

func bytesFromNumbers(values []interface{}) ([]byte, error) {
	result := make([]byte, 0, len(values))

	for i, e := range values {
		n, ok := e.(float64)
		if !ok || n < 0 || n > 255 || n != float64(int(n)) {
			return nil, fmt.Errorf("invalid byte value at index %d: %v", i, e)
		}

		result = append(result, byte(n))
	}

	return result, nil
}

func rolesHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rolesType {
		return data, nil
	}

	values, ok := data.([]interface{})
	if !ok {
		return data, nil
	}

	roles := make([]Role, 0, len(values))

	for _, v := range values {
		if role, ok := roleFromValue(v); ok {
			roles = append(roles, role)
		}
	}

	return roles, nil
}
