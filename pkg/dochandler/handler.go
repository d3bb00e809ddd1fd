/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dochandler performs DID operation processing and document resolution.
//
// Operation processing runs the same sequence for every DID action: the DID is normalized, the
// call is built with an empty signature slot, the payload is built from the encoded call
// arguments and signed by the configured signer, the signature is normalized to bytes and put
// into the call, and the call is submitted through the chain client. The argument values are
// shared between the payload and the submitted call so their encodings cannot differ.
//
// Document resolution normalizes the DID, fetches the on-chain record and projects it into a
// DID document. Resolved documents may be cached; a cached document is dropped once a mutation
// of its DID is finalized.
package dochandler

import (
	"context"
	"net/http"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/chain"
	"github.com/trustbloc/qsb-did-core-go/pkg/api/operation"
	"github.com/trustbloc/qsb-did-core-go/pkg/api/signer"
	"github.com/trustbloc/qsb-did-core-go/pkg/did"
	"github.com/trustbloc/qsb-did-core-go/pkg/didtransformer"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
	"github.com/trustbloc/qsb-did-core-go/pkg/payload"
	"github.com/trustbloc/qsb-did-core-go/pkg/signature"
)

var logger = log.New("qsb-did-dochandler")

const statusBufferSize = 8

// ErrSignerUnavailable is returned when a mutation is requested without a configured signer.
var ErrSignerUnavailable = errors.New("signer unavailable")

// ErrDIDNotFound is returned when the chain holds no record for a DID.
var ErrDIDNotFound = errors.New("DID not found")

// Transformer projects an on-chain DID record into a DID document.
type Transformer interface {
	TransformDocument(d *did.CanonicalDID, data *document.ChainData) *document.DIDDocument
}

// Option is a document handler option.
type Option func(opts *DocumentHandler)

// WithSigner sets the signer of DID payloads.
func WithSigner(s signer.Signer) Option {
	return func(opts *DocumentHandler) {
		opts.signer = s
	}
}

// WithAuthorizer sets the authorizer invoked before a signed call is submitted.
func WithAuthorizer(a signer.Authorizer) Option {
	return func(opts *DocumentHandler) {
		opts.authorizer = a
	}
}

// WithTransformer sets the document transformer.
func WithTransformer(t Transformer) Option {
	return func(opts *DocumentHandler) {
		opts.transformer = t
	}
}

// WithDocumentCache enables caching of resolved documents.
func WithDocumentCache(size int, expiry time.Duration) Option {
	return func(opts *DocumentHandler) {
		opts.cache = gcache.New(size).LRU().Expiration(expiry).Build()
	}
}

// WithHTTPClient sets the client used to fetch schema documents.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *DocumentHandler) {
		opts.httpClient = client
	}
}

// WithStrictSchemas requires fetched and registered schema documents to compile as JSON Schemas.
// By default any JSON document is accepted.
func WithStrictSchemas() Option {
	return func(opts *DocumentHandler) {
		opts.strictSchemas = true
	}
}

// DocumentHandler processes DID and schema operations against a chain client.
type DocumentHandler struct {
	chain         chain.Client
	signer        signer.Signer
	authorizer    signer.Authorizer
	transformer   Transformer
	cache         gcache.Cache
	httpClient    *http.Client
	strictSchemas bool
}

// New creates a new document handler.
func New(client chain.Client, opts ...Option) *DocumentHandler {
	h := &DocumentHandler{
		chain:       client,
		transformer: didtransformer.New(),
		httpClient:  http.DefaultClient,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Result describes a submitted operation.
type Result struct {
	OperationID string `json:"operationId"`
	Action      string `json:"action"`
	DID         string `json:"did"`
	Payload     string `json:"payload,omitempty"`
	Signature   string `json:"signature,omitempty"`
	SchemaID    string `json:"schemaId,omitempty"`

	// Status delivers the transaction status updates. It must be drained (see Wait) unless the
	// context passed to the operation is cancelled.
	Status <-chan chain.TxStatus `json:"-"`
}

// Wait drains the status stream and returns the last status. An error is returned for a
// dispatch error, a stream error or a stream that ends without finalization.
func (r *Result) Wait(ctx context.Context) (*chain.TxStatus, error) {
	var last *chain.TxStatus

	for {
		select {
		case s, ok := <-r.Status:
			if !ok {
				if last == nil || !last.Finalized() {
					return last, errors.Errorf("transaction %s was not finalized", r.OperationID)
				}

				return last, nil
			}

			status := s
			last = &status

			if s.Err != nil {
				return last, s.Err
			}

			if s.DispatchError != nil {
				return last, s.DispatchError
			}
		case <-ctx.Done():
			return last, ctx.Err()
		}
	}
}

// ProcessOperation signs and submits a DID mutation.
func (h *DocumentHandler) ProcessOperation(ctx context.Context, req *operation.Request) (*Result, error) {
	if h.signer == nil {
		return nil, ErrSignerUnavailable
	}

	d, err := did.Normalize(req.DID)
	if err != nil {
		return nil, err
	}

	opID := uuid.New().String()

	call, err := req.Call(d)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s request", req.Action)
	}

	p, err := payload.New(req.Action, call)
	if err != nil {
		logger.Warn("Failed to build payload", log.WithOperationID(opID), log.WithAction(string(req.Action)),
			log.WithError(err))

		return nil, err
	}

	logger.Debug("Signing payload", log.WithOperationID(opID), log.WithDID(d.DID),
		log.WithAction(string(req.Action)), log.WithPayloadSize(len(p.Bytes())))

	raw, err := h.signer.Sign(ctx, d.DID, p.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "sign payload")
	}

	sig, err := decodeSignature(opID, raw)
	if err != nil {
		return nil, errors.Wrap(err, "normalize signature")
	}

	status, err := h.submit(ctx, opID, d, call.WithSignature(sig), true)
	if err != nil {
		return nil, err
	}

	return &Result{
		OperationID: opID,
		Action:      string(req.Action),
		DID:         d.DID,
		Payload:     p.Hex(),
		Signature:   encoder.ToHex(sig),
		Status:      status,
	}, nil
}

// submit runs the authorization step and submits the call. Finalized DID mutations drop the
// cached document of d.
func (h *DocumentHandler) submit(ctx context.Context, opID string, d *did.CanonicalDID, call *extrinsic.Call,
	invalidate bool) (<-chan chain.TxStatus, error) {
	if h.authorizer != nil {
		encoded, err := call.Encode()
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", call)
		}

		if err := h.authorizer.Authorize(ctx, d.DID, encoded); err != nil {
			return nil, errors.Wrap(err, "authorize")
		}
	}

	in, err := h.chain.Submit(ctx, call)
	if err != nil {
		logger.Error("Failed to submit call", log.WithOperationID(opID), log.WithDID(d.DID), log.WithError(err))

		return nil, errors.Wrapf(err, "submit %s", call)
	}

	logger.Info("Submitted call", log.WithOperationID(opID), log.WithDID(d.DID), log.WithAction(call.String()))

	out := make(chan chain.TxStatus, statusBufferSize)

	go func() {
		defer close(out)

		for s := range in {
			switch {
			case s.DispatchError != nil:
				logger.Warn("Call rejected", log.WithOperationID(opID), log.WithDispatchError(s.DispatchError.Error()))
			case s.Err != nil:
				logger.Warn("Status stream failed", log.WithOperationID(opID), log.WithError(s.Err))
			case s.Finalized():
				logger.Info("Call finalized", log.WithOperationID(opID), log.WithBlockHash(s.BlockHash))

				if invalidate {
					h.invalidate(d)
				}
			}

			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// ResolveDocument resolves the DID document of a DID given in any accepted form.
func (h *DocumentHandler) ResolveDocument(ctx context.Context, rawDID string) (*document.ResolutionResult, error) {
	d, err := did.Normalize(rawDID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(d.DID); err == nil {
			logger.Debug("Resolved document from cache", log.WithDID(d.DID))

			return cached.(*document.ResolutionResult), nil
		}
	}

	data, err := h.chain.GetDID(ctx, d.DID)
	if err != nil {
		return nil, errors.Wrapf(err, "get DID record %s", d.DID)
	}

	if data == nil {
		return nil, ErrDIDNotFound
	}

	doc := h.transformer.TransformDocument(d, data)

	result := document.NewResolutionResult(d.DID, doc, data)

	if h.cache != nil {
		if err := h.cache.Set(d.DID, result); err != nil {
			logger.Warn("Failed to cache document", log.WithDID(d.DID), log.WithError(err))
		}
	}

	if logger.IsEnabled(log.DEBUG) {
		fields := []zap.Field{log.WithDID(d.DID), log.WithDeactivated(data.Deactivated), log.WithDocument(doc)}
		if data.Version != nil {
			fields = append(fields, log.WithVersion(*data.Version))
		}

		logger.Debug("Resolved document", fields...)
	}

	return result, nil
}

func (h *DocumentHandler) invalidate(d *did.CanonicalDID) {
	if h.cache != nil {
		h.cache.Remove(d.DID)
	}
}

func decodeSignature(opID string, raw interface{}) ([]byte, error) {
	v, err := signature.Parse(raw)
	if err != nil {
		return nil, err
	}

	logger.Debug("Received signature", log.WithOperationID(opID), log.WithSignatureKind(string(v.Kind())))

	h, err := signature.Normalize(v)
	if err != nil {
		return nil, err
	}

	return encoder.FromHex(h)
}
