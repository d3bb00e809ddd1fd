/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import "context"

// Signer signs DID payloads on behalf of a DID controller. The result may have any of the
// shapes accepted by the signature package.
type Signer interface {
	Sign(ctx context.Context, did string, payload []byte) (interface{}, error)
}

// Authorizer runs the out-of-band authorization (for example a password prompt) that must
// complete before a DID gated transaction is signed.
type Authorizer interface {
	Authorize(ctx context.Context, did string, payload []byte) error
}

// SignerFunc adapts a function to Signer.
type SignerFunc func(ctx context.Context, did string, payload []byte) (interface{}, error)

// Sign calls f.
func (f SignerFunc) Sign(ctx context.Context, did string, payload []byte) (interface{}, error) {
	return f(ctx, did, payload)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, did string, payload []byte) error

// Authorize calls f.
func (f AuthorizerFunc) Authorize(ctx context.Context, did string, payload []byte) error {
	return f(ctx, did, payload)
}
