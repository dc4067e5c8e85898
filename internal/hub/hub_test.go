package hub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"sadaka/internal/model"
)

// newHubServer exposes a Hub behind a bare upgrade endpoint so tests can
// dial real WebSocket connections against it.
func newHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	h := New()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		session := h.Attach(conn)
		defer h.Close(session)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
	t.Cleanup(server.Close)

	return h, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := strings.Replace(server.URL, "http://", "ws://", 1)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// waitForClients polls until the hub sees the expected number of sessions.
func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Count() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %d connected clients, got %d", want, h.Count())
}

func readEvent(t *testing.T, conn *websocket.Conn) model.Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event model.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	return event
}

func TestBroadcastReachesAllClients(t *testing.T) {
	h, server := newHubServer(t)

	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conns[i] = dial(t, server)
	}
	waitForClients(t, h, 3)

	h.Broadcast(model.Event{Type: model.EventDonationUpdate, Data: map[string]int{"familiesSupported": 150}})

	for i, conn := range conns {
		event := readEvent(t, conn)
		if event.Type != model.EventDonationUpdate {
			t.Errorf("Client %d: expected %s event, got %s", i, model.EventDonationUpdate, event.Type)
		}
	}
}

func TestBroadcastOrderPerClient(t *testing.T) {
	h, server := newHubServer(t)

	conn := dial(t, server)
	waitForClients(t, h, 1)

	for i := 0; i < 5; i++ {
		h.Broadcast(model.Event{Type: model.EventGalleryUpdate, Data: map[string]int{"seq": i}})
	}

	// Events arrive in emission order on a single session.
	for i := 0; i < 5; i++ {
		event := readEvent(t, conn)
		data, ok := event.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("Unexpected payload shape: %#v", event.Data)
		}
		if seq := int(data["seq"].(float64)); seq != i {
			t.Errorf("Expected event %d, got %d", i, seq)
		}
	}
}

func TestLateJoinerMissesEarlierEvents(t *testing.T) {
	h, server := newHubServer(t)

	early := dial(t, server)
	waitForClients(t, h, 1)

	h.Broadcast(model.Event{Type: model.EventGalleryUpdate, Data: map[string]string{"id": "before"}})

	late := dial(t, server)
	waitForClients(t, h, 2)

	h.Broadcast(model.Event{Type: model.EventGalleryUpdate, Data: map[string]string{"id": "after"}})

	// The early client sees both events in order.
	first := readEvent(t, early)
	if data := first.Data.(map[string]interface{}); data["id"] != "before" {
		t.Errorf("Early client should see the first event first, got %v", data["id"])
	}
	second := readEvent(t, early)
	if data := second.Data.(map[string]interface{}); data["id"] != "after" {
		t.Errorf("Early client should see the second event next, got %v", data["id"])
	}

	// The late joiner only ever sees the event fired after it connected.
	only := readEvent(t, late)
	if data := only.Data.(map[string]interface{}); data["id"] != "after" {
		t.Errorf("Late joiner must miss events fired before connecting, got %v", data["id"])
	}
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	h, server := newHubServer(t)

	conn := dial(t, server)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)

	// Broadcasting into an empty hub is a no-op, not a failure.
	h.Broadcast(model.Event{Type: model.EventDonationUpdate, Data: nil})
}

func TestShutdownClosesAllSessions(t *testing.T) {
	h, server := newHubServer(t)

	dial(t, server)
	dial(t, server)
	waitForClients(t, h, 2)

	h.Shutdown()

	if h.Count() != 0 {
		t.Errorf("Expected 0 sessions after shutdown, got %d", h.Count())
	}
}

func TestSessionIdentity(t *testing.T) {
	h, server := newHubServer(t)

	dial(t, server)
	dial(t, server)
	waitForClients(t, h, 2)

	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := make(map[string]bool)
	for s := range h.sessions {
		if s.ID == "" {
			t.Error("Session should have an id")
		}
		if s.ConnectedAt.IsZero() {
			t.Error("Session should record its connection time")
		}
		if seen[s.ID] {
			t.Errorf("Duplicate session id %s", s.ID)
		}
		seen[s.ID] = true
	}
}
