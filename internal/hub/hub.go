// Package hub fans change events out to every connected WebSocket client.
//
// Delivery is best-effort, at most once: a client that is not connected when
// an event fires never receives it and resynchronizes through the REST
// endpoints on reconnect. Durability lives in the store, not here.
package hub

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sadaka/internal/model"
)

// sendQueueSize bounds the per-session event queue. A session that falls
// this far behind is dropped instead of stalling the broadcaster.
const sendQueueSize = 16

// Session is one live client connection. Events queued on send are written
// by a dedicated goroutine, so order is FIFO per session and a slow socket
// never blocks a broadcast.
type Session struct {
	ID          string
	ConnectedAt time.Time

	conn *websocket.Conn
	send chan model.Event
	hub  *Hub
}

// Hub owns the set of live sessions. It is created once at process start;
// sessions register on WebSocket handshake and are removed on close, error
// or shutdown.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]bool
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{sessions: make(map[*Session]bool)}
}

// Attach registers an upgraded connection and starts its write loop.
func (h *Hub) Attach(conn *websocket.Conn) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan model.Event, sendQueueSize),
		hub:         h,
	}

	h.mu.Lock()
	h.sessions[s] = true
	total := len(h.sessions)
	h.mu.Unlock()

	go s.writeLoop()

	log.Printf("[WebSocket] New connection %s. Total clients: %d", s.ID, total)
	return s
}

// Close removes the session from the live set and closes its queue and
// socket. Safe to call more than once; no events are delivered afterwards.
func (h *Hub) Close(s *Session) {
	h.mu.Lock()
	if !h.sessions[s] {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s)
	remaining := len(h.sessions)
	close(s.send)
	h.mu.Unlock()

	log.Printf("[WebSocket] Client %s disconnected. Total clients: %d", s.ID, remaining)
}

// Broadcast queues the event for every connected session. It never blocks
// and never fails the caller: a session with a full queue is dropped, a
// failed write only tears down that one session.
func (h *Hub) Broadcast(event model.Event) {
	h.mu.RLock()
	var stalled []*Session
	for s := range h.sessions {
		// Queue close only happens under the write lock, so sending
		// under the read lock cannot race it.
		select {
		case s.send <- event:
		default:
			stalled = append(stalled, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range stalled {
		log.Printf("[WebSocket] Client %s too slow, dropping", s.ID)
		h.Close(s)
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown closes every live session.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		h.Close(s)
	}
}

// writeLoop drains the send queue onto the socket until the queue is closed
// or a write fails.
func (s *Session) writeLoop() {
	failed := false
	for event := range s.send {
		if failed {
			continue
		}
		if err := s.conn.WriteJSON(event); err != nil {
			failed = true
			s.hub.Close(s)
		}
	}
	s.conn.Close()
}
