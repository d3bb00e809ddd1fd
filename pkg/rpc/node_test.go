/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type handlerFunc func(params []json.RawMessage) (result interface{}, rpcErr *Error, notifications []interface{})

// mockNode is a websocket JSON-RPC server answering requests with canned handlers.
type mockNode struct {
	t        *testing.T
	srv      *httptest.Server
	mutex    sync.Mutex
	handlers map[string]handlerFunc
	calls    map[string]int
}

func newMockNode(t *testing.T) *mockNode {
	n := &mockNode{
		t:        t,
		handlers: make(map[string]handlerFunc),
		calls:    make(map[string]int),
	}

	n.srv = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.srv.Close)

	return n
}

func (n *mockNode) url() string {
	return "ws" + strings.TrimPrefix(n.srv.URL, "http")
}

func (n *mockNode) handle(method string, h handlerFunc) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.handlers[method] = h
}

func (n *mockNode) callCount(method string) int {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.calls[method]
}

func (n *mockNode) result(method string, result interface{}) {
	n.handle(method, func([]json.RawMessage) (interface{}, *Error, []interface{}) {
		return result, nil, nil
	})
}

type inbound struct {
	ID     uint64            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (n *mockNode) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}

	defer conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck

	ctx := context.Background()

	for {
		var req inbound
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			return
		}

		n.mutex.Lock()
		n.calls[req.Method]++
		h, ok := n.handlers[req.Method]
		n.mutex.Unlock()

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}

		var notifications []interface{}

		switch {
		case !ok:
			resp["error"] = &Error{Code: -32601, Message: "Method not found"}
		default:
			result, rpcErr, notes := h(req.Params)
			if rpcErr != nil {
				resp["error"] = rpcErr
			} else {
				resp["result"] = result
			}

			notifications = notes
		}

		if err := wsjson.Write(ctx, conn, resp); err != nil {
			return
		}

		for _, note := range notifications {
			msg := map[string]interface{}{
				"jsonrpc": "2.0",
				"method":  "author_extrinsicUpdate",
				"params":  map[string]interface{}{"subscription": resp["result"], "result": note},
			}

			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return
			}
		}
	}
}

func dialMockNode(t *testing.T, n *mockNode) *Client {
	c, err := Dial(context.Background(), n.url(), WithMaxRetries(1))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close() //nolint:errcheck
	})

	return c
}
