package net

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"TurtleBoard/internal/state"
)

// Responder answers interpreter requests on the server side.
type Responder interface {
	Execute(code string) ([]state.Event, error)
	Validate(code string) []Diagnostic
}

// Replay answers every execute request with the same recorded trace. It
// stands in for the real interpreter during development.
type Replay struct {
	Events []state.Event
}

func (r Replay) Execute(string) ([]state.Event, error) { return r.Events, nil }

func (r Replay) Validate(string) []Diagnostic { return nil }

// Server speaks the interpreter protocol over websocket connections.
type Server struct {
	responder Responder
	upgrader  websocket.Upgrader
	Peers     *PeerManager
}

func NewServer(r Responder) *Server {
	return &Server{
		responder: r,
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		Peers:     NewPeerManager(),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[REPLAYD] Upgrade failed: %v", err)
		return
	}
	peer := newPeer(conn)
	s.Peers.Add(peer)
	defer conn.Close()
	defer s.Peers.Remove(peer)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		log.Printf("[REPLAYD] Received '%s' from %s", req.Op, conn.RemoteAddr())
		if err := conn.WriteJSON(s.respond(req)); err != nil {
			log.Printf("[REPLAYD] Error replying to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (s *Server) respond(req Request) Response {
	resp := Response{ID: req.ID}
	switch req.Op {
	case OpExecute:
		events, err := s.responder.Execute(req.Code)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		wire, err := state.ToWire(events)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Events = wire
	case OpValidate:
		resp.Diagnostics = s.responder.Validate(req.Code)
	default:
		resp.Error = "unknown op " + req.Op
	}
	return resp
}
