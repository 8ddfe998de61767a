package net

import (
	"context"
	"errors"
	gonet "net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TurtleBoard/internal/state"
)

type scripted struct {
	events []state.Event
	diags  []Diagnostic
	err    error
	codes  []string
}

func (s *scripted) Execute(code string) ([]state.Event, error) {
	s.codes = append(s.codes, code)
	return s.events, s.err
}

func (s *scripted) Validate(string) []Diagnostic { return s.diags }

func startServer(t *testing.T, r Responder) (*Server, string) {
	t.Helper()
	srv := NewServer(r)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestClientExecute(t *testing.T) {
	want := []state.Event{
		state.ClearEvent{},
		state.MoveEvent{FromX: 250, FromY: 250, ToX: 250, ToY: 200, Color: "red", PenDown: true},
		state.SayEvent{Message: "hi"},
		state.ErrorEvent{Message: "oops"},
	}
	resp := &scripted{events: want}
	_, url := startServer(t, resp)

	c := NewClient(url)
	defer c.Close()

	got, err := c.Execute(context.Background(), "move forward 50")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"move forward 50"}, resp.codes)

	// Second request reuses the connection.
	_, err = c.Execute(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Len(t, resp.codes, 2)
}

func TestClientValidate(t *testing.T) {
	_, url := startServer(t, &scripted{diags: []Diagnostic{{Line: 3, Message: "unknown word"}}})
	c := NewClient(url)
	defer c.Close()

	diags, err := c.Validate(context.Background(), "jump")
	require.NoError(t, err)
	assert.Equal(t, []Diagnostic{{Line: 3, Message: "unknown word"}}, diags)
}

func TestClientSurfacesInterpreterError(t *testing.T) {
	_, url := startServer(t, &scripted{err: errors.New("program too long")})
	c := NewClient(url)
	defer c.Close()

	_, err := c.Execute(context.Background(), "repeat 1000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program too long")
}

func TestClientDialFailure(t *testing.T) {
	l, err := gonet.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	c := NewClient("ws://" + addr + "/ws")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = c.Execute(ctx, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial")
}

func TestClientCancelWhileWaiting(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := NewServer(nil).upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var req Request
		conn.ReadJSON(&req)
		<-block
	}))
	defer ts.Close()
	defer close(block)

	c := NewClient("ws" + strings.TrimPrefix(ts.URL, "http"))
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Execute(ctx, "wait")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientClosed(t *testing.T) {
	c := NewClient("ws://127.0.0.1:1/ws")
	require.NoError(t, c.Close())
	_, err := c.Execute(context.Background(), "")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestServerTracksPeers(t *testing.T) {
	srv, url := startServer(t, Replay{Events: []state.Event{state.ClearEvent{}}})
	c := NewClient(url)

	events, err := c.Execute(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []state.Event{state.ClearEvent{}}, events)
	assert.Equal(t, 1, srv.Peers.Count())

	require.NoError(t, c.Close())
	deadline := time.Now().Add(2 * time.Second)
	for srv.Peers.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, srv.Peers.Count())
}

func TestServerUnknownOp(t *testing.T) {
	srv := NewServer(Replay{})
	resp := srv.respond(Request{ID: "1", Op: "format"})
	assert.Equal(t, "1", resp.ID)
	assert.Contains(t, resp.Error, "format")
}

func TestEntryURL(t *testing.T) {
	assert.Empty(t, entryURL(&mdns.ServiceEntry{Port: 8888}))
	assert.Equal(t, "ws://192.168.1.20:8888/ws", entryURL(&mdns.ServiceEntry{
		AddrV4: gonet.IPv4(192, 168, 1, 20),
		Port:   8888,
	}))
	assert.Equal(t, "ws://10.0.0.2:9000/interp", entryURL(&mdns.ServiceEntry{
		AddrV4:     gonet.IPv4(10, 0, 0, 2),
		Port:       9000,
		InfoFields: []string{"TurtleBoard", "path=/interp"},
	}))
}
