/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/trustbloc/qsb-did-core-go/internal/log"
)

var logger = log.New("qsb-did-rpc")

const (
	jsonRPCVersion = "2.0"

	defaultReadLimit       = 16 << 20
	defaultMaxRetries      = 5
	defaultInitialInterval = 500 * time.Millisecond
	subscriptionBuffer     = 32
	maxOrphans             = subscriptionBuffer
)

// ErrClosed is returned for requests on a closed client.
var ErrClosed = errors.New("rpc client closed")

// Error is a JSON-RPC error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Message, string(e.Data))
	}

	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type message struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      *uint64             `json:"id,omitempty"`
	Result  json.RawMessage     `json:"result,omitempty"`
	Error   *Error              `json:"error,omitempty"`
	Method  string              `json:"method,omitempty"`
	Params  *notificationParams `json:"params,omitempty"`
}

type notificationParams struct {
	Subscription json.RawMessage `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

// Option is a client option.
type Option func(opts *Client)

// WithMaxRetries sets the number of dial retries.
func WithMaxRetries(n uint64) Option {
	return func(opts *Client) {
		opts.maxRetries = n
	}
}

// WithInitialInterval sets the first dial retry interval. Later intervals grow exponentially.
func WithInitialInterval(d time.Duration) Option {
	return func(opts *Client) {
		opts.initialInterval = d
	}
}

// WithReadLimit sets the maximum message size read from the node.
func WithReadLimit(n int64) Option {
	return func(opts *Client) {
		opts.readLimit = n
	}
}

// Client is a JSON-RPC 2.0 client over a single websocket connection. Requests may be issued
// concurrently.
type Client struct {
	url             string
	maxRetries      uint64
	initialInterval time.Duration
	readLimit       int64

	conn       *websocket.Conn
	writeMutex sync.Mutex
	nextID     uint64

	mutex   sync.Mutex
	pending map[uint64]chan *message
	subs    map[string]*Subscription
	orphans map[string][]json.RawMessage
	err     error
	done    chan struct{}
}

// Dial connects to the node at url, retrying with exponential backoff.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	c := &Client{
		url:             url,
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
		readLimit:       defaultReadLimit,
		pending:         make(map[uint64]chan *message),
		subs:            make(map[string]*Subscription),
		orphans:         make(map[string][]json.RawMessage),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.initialInterval

	attempt := 0

	err := backoff.RetryNotify(
		func() error {
			attempt++

			conn, _, dialErr := websocket.Dial(ctx, url, nil) //nolint:bodyclose
			if dialErr != nil {
				return dialErr
			}

			c.conn = conn

			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(eb, c.maxRetries), ctx),
		func(retryErr error, d time.Duration) {
			logger.Warn("Failed to connect to node, will retry",
				log.WithURIString(url), log.WithAttempt(attempt), zap.Duration("backoff", d), log.WithError(retryErr))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	c.conn.SetReadLimit(c.readLimit)

	logger.Debug("Connected to node", log.WithURIString(url), log.WithAttempt(attempt))

	go c.readLoop()

	return c, nil
}

// Close closes the connection. Pending requests fail with ErrClosed.
func (c *Client) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "closing")
	c.shutdown(ErrClosed)

	if err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		return err
	}

	return nil
}

// Call invokes method and unmarshals its result into result, which may be nil.
func (c *Client) Call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	msg, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return err
	}

	if result == nil || len(msg.Result) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Result, result); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", method, err)
	}

	return nil
}

// Subscribe invokes a subscription method. Notifications are delivered on the subscription
// until it is unsubscribed or the client is closed.
func (c *Client) Subscribe(ctx context.Context, method, unsubscribeMethod string, params ...interface{}) (*Subscription, error) {
	msg, err := c.roundTrip(ctx, method, params)
	if err != nil {
		return nil, err
	}

	id, err := subscriptionID(msg.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	sub := &Subscription{
		ID:          id,
		client:      c,
		unsubscribe: unsubscribeMethod,
		ch:          make(chan json.RawMessage, subscriptionBuffer),
		done:        make(chan struct{}),
	}

	c.mutex.Lock()
	c.subs[id] = sub

	// notifications that arrived ahead of the subscribe response; they fit in the buffer
	for _, o := range c.orphans[id] {
		sub.ch <- o
	}

	delete(c.orphans, id)
	c.mutex.Unlock()

	logger.Debug("Subscribed", log.WithRPCMethod(method), zap.String("subscription", id))

	return sub, nil
}

func (c *Client) roundTrip(ctx context.Context, method string, params []interface{}) (*message, error) {
	if params == nil {
		params = []interface{}{}
	}

	id := atomic.AddUint64(&c.nextID, 1)
	respCh := make(chan *message, 1)

	c.mutex.Lock()
	if c.err != nil {
		c.mutex.Unlock()

		return nil, c.err
	}
	c.pending[id] = respCh
	c.mutex.Unlock()

	defer func() {
		c.mutex.Lock()
		delete(c.pending, id)
		c.mutex.Unlock()
	}()

	if err := c.write(ctx, &request{JSONRPC: jsonRPCVersion, ID: id, Method: method, Params: params}); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	logger.Debug("Sent request", log.WithRPCMethod(method), zap.Uint64("id", id))

	select {
	case msg := <-respCh:
		if msg.Error != nil {
			return nil, msg.Error
		}

		return msg, nil
	case <-c.done:
		return nil, c.closeErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) write(ctx context.Context, v interface{}) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	return wsjson.Write(ctx, c.conn, v)
}

func (c *Client) readLoop() {
	for {
		msg := &message{}

		if err := wsjson.Read(context.Background(), c.conn, msg); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				logger.Warn("Ignoring malformed message", log.WithURIString(c.url), log.WithError(err))

				continue
			}

			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				logger.Debug("Connection closed", log.WithURIString(c.url), log.WithError(err))
			}

			c.shutdown(fmt.Errorf("%w: %s", ErrClosed, err))

			return
		}

		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg *message) {
	if msg.ID != nil {
		c.mutex.Lock()
		ch, ok := c.pending[*msg.ID]
		c.mutex.Unlock()

		if ok {
			ch <- msg
		}

		return
	}

	if msg.Params == nil {
		return
	}

	id, err := subscriptionID(msg.Params.Subscription)
	if err != nil {
		logger.Warn("Ignoring notification", log.WithRPCMethod(msg.Method), log.WithError(err))

		return
	}

	c.mutex.Lock()
	sub, ok := c.subs[id]
	if !ok {
		if len(c.orphans[id]) < maxOrphans {
			c.orphans[id] = append(c.orphans[id], msg.Params.Result)
		}
		c.mutex.Unlock()

		return
	}
	c.mutex.Unlock()

	sub.deliver(msg.Params.Result)
}

func (c *Client) shutdown(err error) {
	c.mutex.Lock()

	if c.err != nil {
		c.mutex.Unlock()

		return
	}

	c.err = err
	close(c.done)

	subs := make([]*Subscription, 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}

	c.subs = make(map[string]*Subscription)
	c.mutex.Unlock()

	for _, s := range subs {
		s.end()
	}
}

func (c *Client) closeErr() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.err
}

func (c *Client) removeSubscription(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.subs, id)
}

// subscription ids are strings on Substrate nodes, some nodes return numbers.
func subscriptionID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n != "" {
		return n.String(), nil
	}

	return "", fmt.Errorf("invalid subscription id: %s", string(raw))
}

// Subscription delivers the notifications of a subscription.
type Subscription struct {
	ID          string
	client      *Client
	unsubscribe string
	ch          chan json.RawMessage
	once        sync.Once
	done        chan struct{}
}

// Notifications returns the notification results. The channel is never closed; use Done to
// detect the end of the subscription.
func (s *Subscription) Notifications() <-chan json.RawMessage {
	return s.ch
}

// Done is closed when the subscription ends, either by Unsubscribe or by the client closing.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Unsubscribe ends the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe(ctx context.Context) error {
	if !s.end() {
		return nil
	}

	s.client.removeSubscription(s.ID)

	if s.unsubscribe == "" {
		return nil
	}

	return s.client.Call(ctx, nil, s.unsubscribe, s.ID)
}

// end closes Done and returns true if this call ended the subscription.
func (s *Subscription) end() bool {
	ended := false

	s.once.Do(func() {
		close(s.done)
		ended = true
	})

	return ended
}

func (s *Subscription) deliver(result json.RawMessage) {
	select {
	case s.ch <- result:
	case <-s.done:
	case <-s.client.done:
	}
}
