package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSubscriberReceivesFilteredEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	config := DefaultSubscriberConfig(url)
	config.Events = []EventType{EventTypeStats}

	sub := NewSubscriber(config, zerolog.Nop())

	events := make(chan Event, 10)
	sub.OnEvent(func(e Event) { events <- e })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sub.Run(ctx)

	// Wait for the connection and its narrowed subscription to land.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Subscriber never connected")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	hub.BroadcastBet(map[string]string{"id": "dropped"})
	hub.BroadcastStats(map[string]string{"pnl": "10"})

	select {
	case event := <-events:
		if event.Type != EventTypeStats {
			t.Errorf("Expected only stats events, got %s", event.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No event received")
	}
}

func TestSubscriberStopsOnCancel(t *testing.T) {
	config := DefaultSubscriberConfig("ws://127.0.0.1:1/ws")
	config.MinBackoff = 10 * time.Millisecond

	sub := NewSubscriber(config, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSplitFrames(t *testing.T) {
	frames := splitFrames([]byte("{\"a\":1}\n{\"b\":2}\n{\"c\":3}"))
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if string(frames[1]) != `{"b":2}` {
		t.Errorf("Wrong frame: %s", frames[1])
	}

	single := splitFrames([]byte(`{"a":1}`))
	if len(single) != 1 {
		t.Errorf("Expected 1 frame, got %d", len(single))
	}
}
