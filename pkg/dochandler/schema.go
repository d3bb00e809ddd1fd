/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dochandler

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/operation"
	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/schema"
)

// Schema operation errors.
var (
	ErrSchemaNotFound    = errors.New("Schema not found.")             //nolint:stylecheck
	ErrSchemaExists      = errors.New("Schema is already registered.") //nolint:stylecheck
	ErrSchemaDeprecated  = errors.New("Schema is already deprecated.") //nolint:stylecheck
	ErrSchemaURIRequired = errors.New("Enter a schema URL.")           //nolint:stylecheck
)

// SchemaID returns the id a schema document would be registered under on the connected chain.
func (h *DocumentHandler) SchemaID(ctx context.Context, doc []byte) (*schema.ID, error) {
	genesis, err := h.chain.GenesisHash(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get genesis hash")
	}

	return schema.BuildIDBytes(genesis, doc), nil
}

// FetchSchema downloads a schema document and validates it. The exact bytes are returned so
// they can be registered under the id computed over them.
func (h *DocumentHandler) FetchSchema(ctx context.Context, url string) ([]byte, error) {
	doc, err := schema.Fetch(ctx, h.httpClient, url)
	if err != nil {
		return nil, err
	}

	if err := h.validateSchema(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (h *DocumentHandler) validateSchema(doc []byte) error {
	if h.strictSchemas {
		return schema.Compile(doc)
	}

	return schema.Validate(doc)
}

// RegisterSchema validates and submits a schema document. The URI the document is published
// at is required.
func (h *DocumentHandler) RegisterSchema(ctx context.Context, req *operation.SchemaRequest) (*Result, error) {
	d, err := did.Normalize(req.DID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.URI) == "" {
		return nil, ErrSchemaURIRequired
	}

	if err := h.validateSchema(req.Document); err != nil {
		return nil, err
	}

	id, err := h.SchemaID(ctx, req.Document)
	if err != nil {
		return nil, err
	}

	existing, err := h.chain.GetSchema(ctx, id.Bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "get schema %s", id.SchemaID)
	}

	if existing != nil {
		return nil, ErrSchemaExists
	}

	opID := uuid.New().String()

	logger.Debug("Registering schema", log.WithOperationID(opID), log.WithSchemaID(id.SchemaID),
		log.WithIssuer(d.DID), log.WithSize(len(req.Document)))

	call := extrinsic.RegisterSchema(req.Document, []byte(strings.TrimSpace(req.URI)), d)

	status, err := h.submit(ctx, opID, d, call, false)
	if err != nil {
		return nil, err
	}

	return &Result{
		OperationID: opID,
		Action:      call.Method,
		DID:         d.DID,
		SchemaID:    id.SchemaID,
		Status:      status,
	}, nil
}

// DeprecateSchema deprecates a schema. It is refused locally when the caller is not the issuer.
func (h *DocumentHandler) DeprecateSchema(ctx context.Context, req *operation.DeprecateRequest) (*Result, error) {
	d, err := did.Normalize(req.DID)
	if err != nil {
		return nil, err
	}

	record, err := h.ResolveSchema(ctx, req.SchemaID)
	if err != nil {
		return nil, err
	}

	if err := schema.CheckIssuer(record, d); err != nil {
		return nil, err
	}

	if record.Deprecated {
		return nil, ErrSchemaDeprecated
	}

	opID := uuid.New().String()

	call := extrinsic.DeprecateSchema(record.SchemaID, d)

	status, err := h.submit(ctx, opID, d, call, false)
	if err != nil {
		return nil, err
	}

	return &Result{
		OperationID: opID,
		Action:      call.Method,
		DID:         d.DID,
		SchemaID:    record.SchemaID,
		Status:      status,
	}, nil
}

// ResolveSchema returns the schema record of an id given as did:qsb:schema:<base58> or bare
// base58. Malformed ids fail without querying the chain.
func (h *DocumentHandler) ResolveSchema(ctx context.Context, rawID string) (*schema.Record, error) {
	id, err := schema.NormalizeIDInput(rawID)
	if err != nil {
		return nil, err
	}

	value, err := h.chain.GetSchema(ctx, id.Bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "get schema %s", id.SchemaID)
	}

	if value == nil {
		return nil, ErrSchemaNotFound
	}

	raw, err := schema.DecodeRecord(value)
	if err != nil {
		return nil, err
	}

	return schema.ProjectRecord(id, raw), nil
}

// SchemasByIssuer returns the schema records issued by a DID. Records that fail to decode are
// skipped.
func (h *DocumentHandler) SchemasByIssuer(ctx context.Context, rawDID string) ([]*schema.Record, error) {
	d, err := did.Normalize(rawDID)
	if err != nil {
		return nil, err
	}

	entries, err := h.chain.SchemaEntries(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list schemas")
	}

	records := make([]*schema.Record, 0, len(entries))

	for _, entry := range entries {
		raw, err := schema.DecodeRecord(entry.Value)
		if err != nil {
			logger.Warn("Skipping undecodable schema record", log.WithSchemaID(schema.FromBytes(entry.ID).SchemaID),
				log.WithError(err))

			continue
		}

		records = append(records, schema.ProjectRecord(schema.FromBytes(entry.ID), raw))
	}

	result := schema.FilterByIssuer(records, d)

	logger.Debug("Listed schemas by issuer", log.WithIssuer(d.DID), log.WithTotal(len(result)))

	return result, nil
}
