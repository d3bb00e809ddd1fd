/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chain

import (
	"context"
	"fmt"

	"github.com/trustbloc/qsb-did-core-go/pkg/document"
	"github.com/trustbloc/qsb-did-core-go/pkg/extrinsic"
)

// Client defines interface for accessing the DID and schema pallets of the chain.
type Client interface {
	// GenesisHash returns the hash of block zero.
	GenesisHash(ctx context.Context) ([]byte, error)

	// GetDID returns the on-chain record of the DID. Nil is returned if the DID is not registered.
	GetDID(ctx context.Context, did string) (*document.ChainData, error)

	// GetSchema returns the SCALE encoded schema record stored under id, or nil if there is none.
	GetSchema(ctx context.Context, id [32]byte) ([]byte, error)

	// SchemaEntries returns all schema records.
	SchemaEntries(ctx context.Context) ([]SchemaEntry, error)

	// Submit signs and submits the call. Status updates are delivered on the returned channel,
	// which is closed after the last update.
	Submit(ctx context.Context, call *extrinsic.Call) (<-chan TxStatus, error)
}

// SchemaEntry is a raw schema storage entry.
type SchemaEntry struct {
	ID    [32]byte
	Value []byte
}

// StatusType is the lifecycle stage of a submitted transaction.
type StatusType string

// Transaction status types.
const (
	StatusFuture          StatusType = "Future"
	StatusReady           StatusType = "Ready"
	StatusBroadcast       StatusType = "Broadcast"
	StatusInBlock         StatusType = "InBlock"
	StatusRetracted       StatusType = "Retracted"
	StatusFinalityTimeout StatusType = "FinalityTimeout"
	StatusFinalized       StatusType = "Finalized"
	StatusUsurped         StatusType = "Usurped"
	StatusDropped         StatusType = "Dropped"
	StatusInvalid         StatusType = "Invalid"
)

// IsTerminal returns true if no further updates follow the status.
func (s StatusType) IsTerminal() bool {
	switch s {
	case StatusFinalized, StatusFinalityTimeout, StatusUsurped, StatusDropped, StatusInvalid:
		return true
	default:
		return false
	}
}

// TxStatus is a transaction status update.
type TxStatus struct {
	Type          StatusType
	BlockHash     string
	DispatchError *DispatchError
	Err           error
}

// Finalized returns true if the transaction was finalized.
func (s *TxStatus) Finalized() bool {
	return s.Type == StatusFinalized
}

// DispatchError is an on-chain rejection of a dispatched call.
type DispatchError struct {
	// Module errors carry the pallet and error names.
	Section string
	Name    string

	// Other holds the description of non module errors.
	Other string
}

func (e *DispatchError) Error() string {
	if e.IsModule() {
		return fmt.Sprintf("Transaction failed: %s.%s", e.Section, e.Name)
	}

	return fmt.Sprintf("Transaction failed: %s", e.Other)
}

// IsModule returns true if a pallet raised the error.
func (e *DispatchError) IsModule() bool {
	return e.Section != "" || e.Name != ""
}
