/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/chain"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/encoder"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
	"github.com/trustbloc/qsb-did-core-go/internal/log"
)

// RPC methods.
const (
	MethodGetBlockHash      = "chain_getBlockHash"
	MethodDIDGetByString    = "did_getByString"
	MethodGetStorage        = "state_getStorage"
	MethodGetKeysPaged      = "state_getKeysPaged"
	MethodQueryStorageAt    = "state_queryStorageAt"
	MethodSubmitAndWatch    = "author_submitAndWatchExtrinsic"
	MethodUnwatchExtrinsic  = "author_unwatchExtrinsic"
	defaultKeysPageSize     = 256
	statusChannelBufferSize = 8
)

// Caller issues JSON-RPC requests.
type Caller interface {
	Call(ctx context.Context, result interface{}, method string, params ...interface{}) error
	Subscribe(ctx context.Context, method, unsubscribeMethod string, params ...interface{}) (*Subscription, error)
}

// ExtrinsicBuilder builds the signed extrinsic for a call, returned as 0x hex. Account
// selection, nonces and account signing are the builder's concern.
type ExtrinsicBuilder interface {
	BuildExtrinsic(ctx context.Context, call *extrinsic.Call) (string, error)
}

// DispatchInspector reports the dispatch result of an extrinsic included in a block. A nil
// error with a nil DispatchError means the call succeeded.
type DispatchInspector interface {
	Inspect(ctx context.Context, blockHash, extrinsicHex string) (*chain.DispatchError, error)
}

// ChainOption is a ChainClient option.
type ChainOption func(opts *ChainClient)

// WithDispatchInspector sets the inspector used to detect dispatch errors.
func WithDispatchInspector(inspector DispatchInspector) ChainOption {
	return func(opts *ChainClient) {
		opts.inspector = inspector
	}
}

// WithKeysPageSize sets the page size used when listing storage keys. Non-positive sizes are
// ignored.
func WithKeysPageSize(n int) ChainOption {
	return func(opts *ChainClient) {
		if n > 0 {
			opts.pageSize = n
		}
	}
}

// ChainClient implements chain.Client over a node's JSON-RPC API.
type ChainClient struct {
	caller    Caller
	builder   ExtrinsicBuilder
	inspector DispatchInspector
	pageSize  int

	mutex   sync.Mutex
	genesis []byte
}

// NewChainClient returns a new chain client. The builder may be nil for read-only use.
func NewChainClient(caller Caller, builder ExtrinsicBuilder, opts ...ChainOption) *ChainClient {
	c := &ChainClient{
		caller:   caller,
		builder:  builder,
		pageSize: defaultKeysPageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GenesisHash returns the hash of block zero. It is fetched once.
func (c *ChainClient) GenesisHash(ctx context.Context) ([]byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.genesis != nil {
		return c.genesis, nil
	}

	var hash string
	if err := c.caller.Call(ctx, &hash, MethodGetBlockHash, 0); err != nil {
		return nil, err
	}

	genesis, err := encoder.FromHex(hash)
	if err != nil || len(genesis) == 0 {
		return nil, fmt.Errorf("invalid genesis hash: %q", hash)
	}

	c.genesis = genesis

	return genesis, nil
}

// GetDID returns the on-chain record of the DID, or nil if it is not registered.
func (c *ChainClient) GetDID(ctx context.Context, did string) (*document.ChainData, error) {
	var raw json.RawMessage
	if err := c.caller.Call(ctx, &raw, MethodDIDGetByString, did); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	return document.ParseChainDataJSON(raw)
}

// GetSchema returns the SCALE encoded schema record, or nil if there is none.
func (c *ChainClient) GetSchema(ctx context.Context, id [32]byte) ([]byte, error) {
	key, err := SchemaStorageKey(id)
	if err != nil {
		return nil, err
	}

	var value *string
	if err := c.caller.Call(ctx, &value, MethodGetStorage, encoder.ToHex(key)); err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	return encoder.FromHex(*value)
}

type storageChangeSet struct {
	Block   string      `json:"block"`
	Changes [][2]string `json:"changes"`
}

// SchemaEntries returns all schema records.
func (c *ChainClient) SchemaEntries(ctx context.Context) ([]chain.SchemaEntry, error) {
	keys, err := c.keys(ctx, StoragePrefix(SchemaPalletPrefix, SchemasStorage))
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	var sets []storageChangeSet
	if err := c.caller.Call(ctx, &sets, MethodQueryStorageAt, keys); err != nil {
		return nil, err
	}

	var entries []chain.SchemaEntry

	for _, set := range sets {
		for _, change := range set.Changes {
			entry, ok, err := schemaEntry(change)
			if err != nil {
				return nil, err
			}

			if ok {
				entries = append(entries, entry)
			}
		}
	}

	logger.Debug("Loaded schema entries", log.WithTotal(len(entries)))

	return entries, nil
}

func schemaEntry(change [2]string) (chain.SchemaEntry, bool, error) {
	// removed entries have an empty value
	if change[1] == "" {
		return chain.SchemaEntry{}, false, nil
	}

	key, err := encoder.FromHex(change[0])
	if err != nil {
		return chain.SchemaEntry{}, false, fmt.Errorf("invalid storage key: %w", err)
	}

	id, err := SchemaIDFromKey(key)
	if err != nil {
		return chain.SchemaEntry{}, false, err
	}

	value, err := encoder.FromHex(change[1])
	if err != nil {
		return chain.SchemaEntry{}, false, fmt.Errorf("invalid storage value: %w", err)
	}

	return chain.SchemaEntry{ID: id, Value: value}, true, nil
}

func (c *ChainClient) keys(ctx context.Context, prefix []byte) ([]string, error) {
	prefixHex := encoder.ToHex(prefix)

	var (
		all   []string
		start string
	)

	for {
		params := []interface{}{prefixHex, c.pageSize}
		if start != "" {
			params = append(params, start)
		}

		var page []string
		if err := c.caller.Call(ctx, &page, MethodGetKeysPaged, params...); err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) == 0 || len(page) < c.pageSize {
			return all, nil
		}

		start = page[len(page)-1]
	}
}

// Submit builds, submits and watches the extrinsic for call. The returned channel is closed
// after a terminal status, a dispatch error or when ctx is done.
func (c *ChainClient) Submit(ctx context.Context, call *extrinsic.Call) (<-chan chain.TxStatus, error) {
	if c.builder == nil {
		return nil, fmt.Errorf("no extrinsic builder configured to submit %s", call)
	}

	xt, err := c.builder.BuildExtrinsic(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("build extrinsic for %s: %w", call, err)
	}

	sub, err := c.caller.Subscribe(ctx, MethodSubmitAndWatch, MethodUnwatchExtrinsic, xt)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", call, err)
	}

	statusCh := make(chan chain.TxStatus, statusChannelBufferSize)

	go c.watch(ctx, sub, xt, statusCh)

	return statusCh, nil
}

func (c *ChainClient) watch(ctx context.Context, sub *Subscription, xt string, statusCh chan<- chain.TxStatus) {
	defer close(statusCh)

	defer func() {
		if err := sub.Unsubscribe(context.Background()); err != nil {
			logger.Debug("Failed to unwatch extrinsic", log.WithError(err))
		}
	}()

	for {
		select {
		case raw := <-sub.Notifications():
			status, err := ParseTxStatus(raw)
			if err != nil {
				status = chain.TxStatus{Err: err}
			} else if c.inspector != nil && (status.Type == chain.StatusInBlock || status.Type == chain.StatusFinalized) {
				status.DispatchError, status.Err = c.inspector.Inspect(ctx, status.BlockHash, xt)
			}

			logger.Debug("Transaction status", log.WithTxStatus(string(status.Type)), log.WithBlockHash(status.BlockHash))

			if !send(ctx, statusCh, status) {
				return
			}

			if status.Err != nil || status.DispatchError != nil || status.Type.IsTerminal() {
				return
			}
		case <-sub.Done():
			send(ctx, statusCh, chain.TxStatus{Err: ErrClosed})

			return
		case <-ctx.Done():
			return
		}
	}
}

func send(ctx context.Context, ch chan<- chain.TxStatus, status chain.TxStatus) bool {
	select {
	case ch <- status:
		return true
	case <-ctx.Done():
		return false
	}
}

// ParseTxStatus parses an author_extrinsicUpdate result: either a bare status name such as
// "ready" or a single-key object such as {"inBlock": "0x..."}.
func ParseTxStatus(raw json.RawMessage) (chain.TxStatus, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		t, err := statusType(name)
		if err != nil {
			return chain.TxStatus{}, err
		}

		return chain.TxStatus{Type: t}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) != 1 {
		return chain.TxStatus{}, fmt.Errorf("invalid transaction status: %s", string(raw))
	}

	for key, value := range obj {
		t, err := statusType(key)
		if err != nil {
			return chain.TxStatus{}, err
		}

		status := chain.TxStatus{Type: t}

		var hash string
		if json.Unmarshal(value, &hash) == nil {
			status.BlockHash = hash
		}

		return status, nil
	}

	return chain.TxStatus{}, fmt.Errorf("invalid transaction status: %s", string(raw))
}

var statusTypes = []chain.StatusType{
	chain.StatusFuture, chain.StatusReady, chain.StatusBroadcast, chain.StatusInBlock, chain.StatusRetracted,
	chain.StatusFinalityTimeout, chain.StatusFinalized, chain.StatusUsurped, chain.StatusDropped, chain.StatusInvalid,
}

func statusType(name string) (chain.StatusType, error) {
	for _, t := range statusTypes {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown transaction status: %s", name)
}
