/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldURI           = "uri"
	FieldDID           = "did"
	FieldAction        = "action"
	FieldOperationID   = "operationID"
	FieldPayloadSize   = "payloadSize"
	FieldSize          = "size"
	FieldTotal         = "total"
	FieldSchemaID      = "schemaID"
	FieldTxStatus      = "txStatus"
	FieldBlockHash     = "blockHash"
	FieldDispatchError = "dispatchError"
	FieldRPCMethod     = "rpcMethod"
	FieldDocument      = "document"
	FieldDeactivated   = "deactivated"
	FieldVersion       = "version"
	FieldIssuer        = "issuer"
	FieldSignatureKind = "signatureKind"
	FieldAttempt       = "attempt"
)

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// WithURIString sets the uri field.
func WithURIString(value string) zap.Field {
	return zap.String(FieldURI, value)
}

// WithDID sets the did field.
func WithDID(value string) zap.Field {
	return zap.String(FieldDID, value)
}

// WithAction sets the action field.
func WithAction(value string) zap.Field {
	return zap.String(FieldAction, value)
}

// WithOperationID sets the operation-id field.
func WithOperationID(value string) zap.Field {
	return zap.String(FieldOperationID, value)
}

// WithPayloadSize sets the payload-size field.
func WithPayloadSize(value int) zap.Field {
	return zap.Int(FieldPayloadSize, value)
}

// WithSize sets the size field.
func WithSize(value int) zap.Field {
	return zap.Int(FieldSize, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// WithSchemaID sets the schema-id field.
func WithSchemaID(value string) zap.Field {
	return zap.String(FieldSchemaID, value)
}

// WithTxStatus sets the tx-status field.
func WithTxStatus(value string) zap.Field {
	return zap.String(FieldTxStatus, value)
}

// WithBlockHash sets the block-hash field.
func WithBlockHash(value string) zap.Field {
	return zap.String(FieldBlockHash, value)
}

// WithDispatchError sets the dispatch-error field.
func WithDispatchError(value string) zap.Field {
	return zap.String(FieldDispatchError, value)
}

// WithRPCMethod sets the rpc-method field.
func WithRPCMethod(value string) zap.Field {
	return zap.String(FieldRPCMethod, value)
}

// WithDocument sets the document field.
func WithDocument(value interface{}) zap.Field {
	return zap.Inline(newJSONMarshaller(FieldDocument, value))
}

// WithDeactivated sets the deactivated field.
func WithDeactivated(value bool) zap.Field {
	return zap.Bool(FieldDeactivated, value)
}

// WithVersion sets the version field.
func WithVersion(value uint64) zap.Field {
	return zap.Uint64(FieldVersion, value)
}

// WithIssuer sets the issuer field.
func WithIssuer(value string) zap.Field {
	return zap.String(FieldIssuer, value)
}

// WithSignatureKind sets the signature-kind field.
func WithSignatureKind(value string) zap.Field {
	return zap.String(FieldSignatureKind, value)
}

// WithAttempt sets the attempt field.
func WithAttempt(value int) zap.Field {
	return zap.Int(FieldAttempt, value)
}

type jsonMarshaller struct {
	key string
	obj interface{}
}

func newJSONMarshaller(key string, value interface{}) *jsonMarshaller {
	return &jsonMarshaller{key: key, obj: value}
}

func (m *jsonMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	b, err := json.Marshal(m.obj)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	e.AddString(m.key, string(b))

	return nil
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}

// StringArrayMarshaller marshals an array of strings into a log field.
type StringArrayMarshaller struct {
	values []string
}

// NewStringArrayMarshaller returns a new StringArrayMarshaller.
func NewStringArrayMarshaller(values []string) *StringArrayMarshaller {
	return &StringArrayMarshaller{values: values}
}

// MarshalLogArray marshals the array.
func (m *StringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
