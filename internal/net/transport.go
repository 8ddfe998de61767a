package net

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Peer is one client connected to the replay server. Two connections from
// the same address are still distinct peers.
type Peer struct {
	ID   string
	Conn *websocket.Conn
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{ID: uuid.NewString(), Conn: conn}
}

// PeerManager tracks the server's live connections so they can be closed on
// shutdown.
type PeerManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.ID] = peer
	log.Printf("[REPLAYD] Client %.8s connected from %s", peer.ID, peer.Conn.RemoteAddr())
}

func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if _, ok := pm.peers[peer.ID]; !ok {
		return
	}
	delete(pm.peers, peer.ID)
	log.Printf("[REPLAYD] Client %.8s disconnected", peer.ID)
}

func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for id, p := range pm.peers {
		p.Conn.Close()
		delete(pm.peers, id)
	}
}
