package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("Dial failed: %v", err)
	}

	// Wait until the hub's event loop has registered the client.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	// Coalesced writes are newline-separated; take the first event.
	if i := strings.IndexByte(string(raw), '\n'); i >= 0 {
		raw = raw[:i]
	}

	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("Bad event payload %q: %v", raw, err)
	}
	return event
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	go hub.Run()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.BroadcastBet(map[string]string{"id": "b1"})

	event := readEvent(t, conn)
	if event.Type != EventTypeBet {
		t.Errorf("Expected bet event, got %s", event.Type)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp not set")
	}
}

func TestHubSubscriptionFilter(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	go hub.Run()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	unsub := map[string]interface{}{"type": "unsubscribe", "events": []string{"bet"}}
	if err := conn.WriteJSON(unsub); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	// Give the read pump a moment to apply the subscription change.
	time.Sleep(100 * time.Millisecond)

	hub.BroadcastBet(map[string]string{"id": "dropped"})
	hub.BroadcastStats(map[string]string{"pnl": "12.50"})

	event := readEvent(t, conn)
	if event.Type != EventTypeStats {
		t.Errorf("Expected the bet event to be filtered out, got %s", event.Type)
	}
}

func TestHubClientCountAfterDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	go hub.Run()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.ClientCount())
	}

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
