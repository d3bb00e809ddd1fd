/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/trustbloc/qsb-did-core-go/pkg/api/chain"
	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
)

// DefaultGenesis is the genesis hash returned by the mock chain client.
var DefaultGenesis = bytes.Repeat([]byte{0xab}, 32)

// MockChainClient mocks the chain client for testing purposes.
type MockChainClient struct {
	sync.RWMutex
	genesis   []byte
	dids      map[string]*document.ChainData
	schemas   map[[32]byte][]byte
	statuses  []chain.TxStatus
	submitted []*extrinsic.Call
	calls     map[string]int
	err       error
	submitErr error
}

// NewMockChainClient creates mock client.
func NewMockChainClient(err error) *MockChainClient {
	return &MockChainClient{
		err:     err,
		genesis: DefaultGenesis,
		dids:    make(map[string]*document.ChainData),
		schemas: make(map[[32]byte][]byte),
		calls:   make(map[string]int),
		statuses: []chain.TxStatus{
			{Type: chain.StatusReady},
			{Type: chain.StatusInBlock, BlockHash: "0x01"},
			{Type: chain.StatusFinalized, BlockHash: "0x01"},
		},
	}
}

// WithGenesis sets the genesis hash.
func (m *MockChainClient) WithGenesis(genesis []byte) *MockChainClient {
	m.genesis = genesis

	return m
}

// WithStatuses sets the status updates emitted for each submitted call.
func (m *MockChainClient) WithStatuses(statuses ...chain.TxStatus) *MockChainClient {
	m.statuses = statuses

	return m
}

// WithSubmitError injects an error returned by Submit.
func (m *MockChainClient) WithSubmitError(err error) *MockChainClient {
	m.submitErr = err

	return m
}

// PutDID stores a DID record.
func (m *MockChainClient) PutDID(did string, data *document.ChainData) {
	m.Lock()
	defer m.Unlock()

	m.dids[did] = data
}

// PutSchema stores a SCALE encoded schema record.
func (m *MockChainClient) PutSchema(id [32]byte, value []byte) {
	m.Lock()
	defer m.Unlock()

	m.schemas[id] = value
}

// GenesisHash returns the genesis hash.
func (m *MockChainClient) GenesisHash(context.Context) ([]byte, error) {
	m.count("GenesisHash")

	if m.err != nil {
		return nil, m.err
	}

	return m.genesis, nil
}

// GetDID returns the stored DID record.
func (m *MockChainClient) GetDID(_ context.Context, did string) (*document.ChainData, error) {
	m.count("GetDID")

	if m.err != nil {
		return nil, m.err
	}

	m.RLock()
	defer m.RUnlock()

	return m.dids[did], nil
}

// GetSchema returns the stored schema record.
func (m *MockChainClient) GetSchema(_ context.Context, id [32]byte) ([]byte, error) {
	m.count("GetSchema")

	if m.err != nil {
		return nil, m.err
	}

	m.RLock()
	defer m.RUnlock()

	return m.schemas[id], nil
}

// SchemaEntries returns all stored schema records ordered by id.
func (m *MockChainClient) SchemaEntries(context.Context) ([]chain.SchemaEntry, error) {
	m.count("SchemaEntries")

	if m.err != nil {
		return nil, m.err
	}

	m.RLock()
	defer m.RUnlock()

	entries := make([]chain.SchemaEntry, 0, len(m.schemas))
	for id, value := range m.schemas {
		entries = append(entries, chain.SchemaEntry{ID: id, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].ID[:], entries[j].ID[:]) < 0
	})

	return entries, nil
}

// Submit records the call and emits the configured statuses.
func (m *MockChainClient) Submit(_ context.Context, call *extrinsic.Call) (<-chan chain.TxStatus, error) {
	m.count("Submit")

	if m.submitErr != nil {
		return nil, m.submitErr
	}

	m.Lock()
	m.submitted = append(m.submitted, call)
	m.Unlock()

	ch := make(chan chain.TxStatus, len(m.statuses))
	for _, s := range m.statuses {
		ch <- s
	}

	close(ch)

	return ch, nil
}

// Submitted returns the submitted calls.
func (m *MockChainClient) Submitted() []*extrinsic.Call {
	m.RLock()
	defer m.RUnlock()

	return append([]*extrinsic.Call(nil), m.submitted...)
}

// CallCount returns the number of times the named method was called.
func (m *MockChainClient) CallCount(method string) int {
	m.RLock()
	defer m.RUnlock()

	return m.calls[method]
}

func (m *MockChainClient) count(method string) {
	m.Lock()
	defer m.Unlock()

	m.calls[method]++
}
