/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"
)

// MockSigner returns a canned signer result.
type MockSigner struct {
	sync.Mutex
	Result interface{}
	Err    error

	payloads [][]byte
}

// NewMockSigner creates a signer returning result.
func NewMockSigner(result interface{}) *MockSigner {
	return &MockSigner{Result: result}
}

// Sign records the payload and returns the configured result.
func (m *MockSigner) Sign(_ context.Context, _ string, payload []byte) (interface{}, error) {
	m.Lock()
	defer m.Unlock()

	m.payloads = append(m.payloads, payload)

	if m.Err != nil {
		return nil, m.Err
	}

	return m.Result, nil
}

// Payloads returns the signed payloads.
func (m *MockSigner) Payloads() [][]byte {
	m.Lock()
	defer m.Unlock()

	return append([][]byte(nil), m.payloads...)
}

// MockAuthorizer records authorization requests.
type MockAuthorizer struct {
	sync.Mutex
	Err error

	dids []string
}

// Authorize records the DID and returns the configured error.
func (m *MockAuthorizer) Authorize(_ context.Context, did string, _ []byte) error {
	m.Lock()
	defer m.Unlock()

	m.dids = append(m.dids, did)

	return m.Err
}

// DIDs returns the DIDs passed to Authorize.
func (m *MockAuthorizer) DIDs() []string {
	m.Lock()
	defer m.Unlock()

	return append([]string(nil), m.dids...)
}
