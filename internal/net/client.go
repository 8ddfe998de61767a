package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"TurtleBoard/internal/state"
)

const defaultRoundTrip = 30 * time.Second

// Client talks to an interpreter over a websocket. It dials lazily and
// redials after a broken connection; requests are serialised.
type Client struct {
	url    string
	dialer *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

var _ Interpreter = (*Client)(nil)

func NewClient(url string) *Client {
	return &Client{url: url, dialer: websocket.DefaultDialer}
}

func (c *Client) URL() string { return c.url }

func (c *Client) Execute(ctx context.Context, code string) ([]state.Event, error) {
	resp, err := c.roundTrip(ctx, OpExecute, code)
	if err != nil {
		return nil, err
	}
	events, err := state.FromWire(resp.Events)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return events, nil
}

func (c *Client) Validate(ctx context.Context, code string) ([]Diagnostic, error) {
	resp, err := c.roundTrip(ctx, OpValidate, code)
	if err != nil {
		return nil, err
	}
	return resp.Diagnostics, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, code string) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Response{}, ErrClosed
	}
	if c.conn == nil {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return Response{}, fmt.Errorf("%s: dial %s: %w", op, c.url, err)
		}
		log.Printf("[NET] Connected to interpreter at %s", c.url)
		c.conn = conn
	}

	// Cancellation is delivered by pulling the read deadline in, so the
	// error seen below always comes after ctx is done.
	deadline := time.Now().Add(defaultRoundTrip)
	c.conn.SetWriteDeadline(deadline)
	c.conn.SetReadDeadline(deadline)
	conn := c.conn
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	req := Request{ID: uuid.NewString(), Op: op, Code: code}
	resp, err := exchange(conn, req)
	if err != nil {
		c.conn.Close()
		c.conn = nil
		if ctx.Err() != nil {
			err = errors.Join(ctx.Err(), err)
		}
		return Response{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp.Error != "" {
		return Response{}, fmt.Errorf("%s: interpreter: %s", op, resp.Error)
	}
	return resp, nil
}

// exchange sends req and reads until the matching response arrives,
// dropping replies to earlier, abandoned requests.
func exchange(conn *websocket.Conn, req Request) (Response, error) {
	if err := conn.WriteJSON(req); err != nil {
		return Response{}, err
	}
	for {
		var resp Response
		if err := conn.ReadJSON(&resp); err != nil {
			return Response{}, err
		}
		if resp.ID == req.ID {
			return resp, nil
		}
		log.Printf("[NET] Dropping stale response %s", resp.ID)
	}
}
