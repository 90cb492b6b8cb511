// Package stream provides real-time WebSocket fan-out of dashboard
// events: fresh recommendations, bet updates, alert hits and derived
// stats.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/edgedesk/edgedesk-go/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventType represents the type of streaming event.
type EventType string

const (
	EventTypeRecommendation EventType = "recommendation"
	EventTypeBet            EventType = "bet"
	EventTypeAlert          EventType = "alert"
	EventTypeStats          EventType = "stats"
	EventTypeRefresh        EventType = "refresh"
	EventTypeError          EventType = "error"
	EventTypeHeartbeat      EventType = "heartbeat"
)

var allEventTypes = []EventType{
	EventTypeRecommendation,
	EventTypeBet,
	EventTypeAlert,
	EventTypeStats,
	EventTypeRefresh,
	EventTypeError,
	EventTypeHeartbeat,
}

// Event is a streaming event sent to clients.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Hub manages WebSocket connections and broadcasts events.
type Hub struct {
	log     zerolog.Logger
	metrics *metrics.ClientMetrics

	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	upgrader websocket.Upgrader
}

// Client represents a WebSocket client connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	subscriptions map[EventType]bool
	subMu         sync.RWMutex
}

// NewHub creates a new streaming hub. m may be nil.
func NewHub(log zerolog.Logger, m *metrics.ClientMetrics) *Hub {
	return &Hub{
		log:        log,
		metrics:    m,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.observeClients(count)
			h.log.Debug().Int("clients", count).Msg("ws client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.observeClients(count)
			h.log.Debug().Int("clients", count).Msg("ws client disconnected")

		case event := <-h.broadcast:
			h.broadcastEvent(event)

		case <-heartbeat.C:
			h.Broadcast(Event{
				Type:      EventTypeHeartbeat,
				Timestamp: time.Now(),
				Data:      map[string]interface{}{"clients": h.ClientCount()},
			})
		}
	}
}

func (h *Hub) observeClients(count int) {
	if h.metrics != nil {
		h.metrics.StreamClients.Set(float64(count))
	}
}

func (h *Hub) broadcastEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal stream event")
		return
	}

	if h.metrics != nil {
		h.metrics.StreamEvents.WithLabelValues(string(event.Type)).Inc()
	}

	// Full lock: slow clients get evicted from the map below.
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if !client.isSubscribed(event.Type) {
			continue
		}

		select {
		case client.send <- data:
		default:
			// Client buffer full, drop the connection.
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// Broadcast sends an event to all subscribed clients.
func (h *Hub) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn().Str("type", string(event.Type)).Msg("broadcast channel full, dropping event")
	}
}

// BroadcastRecommendations broadcasts a fresh recommendation batch.
func (h *Hub) BroadcastRecommendations(recs interface{}) {
	h.Broadcast(Event{Type: EventTypeRecommendation, Timestamp: time.Now(), Data: recs})
}

// BroadcastBet broadcasts a bet placement or settlement.
func (h *Hub) BroadcastBet(bet interface{}) {
	h.Broadcast(Event{Type: EventTypeBet, Timestamp: time.Now(), Data: bet})
}

// BroadcastAlert broadcasts an alert hit.
func (h *Hub) BroadcastAlert(alert interface{}) {
	h.Broadcast(Event{Type: EventTypeAlert, Timestamp: time.Now(), Data: alert})
}

// BroadcastStats broadcasts derived dashboard stats.
func (h *Hub) BroadcastStats(stats interface{}) {
	h.Broadcast(Event{Type: EventTypeStats, Timestamp: time.Now(), Data: stats})
}

// BroadcastRefresh broadcasts a board refresh result.
func (h *Hub) BroadcastRefresh(result interface{}) {
	h.Broadcast(Event{Type: EventTypeRefresh, Timestamp: time.Now(), Data: result})
}

// BroadcastError broadcasts an error event.
func (h *Hub) BroadcastError(err error, context string) {
	h.Broadcast(Event{
		Type:      EventTypeError,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"error":   err.Error(),
			"context": context,
		},
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS handles WebSocket upgrade requests.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}

	client := &Client{
		hub:           h,
		conn:          conn,
		send:          make(chan []byte, 256),
		subscriptions: make(map[EventType]bool),
	}

	// Subscribe to everything by default; clients narrow via messages.
	for _, t := range allEventTypes {
		client.subscriptions[t] = true
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) isSubscribed(eventType EventType) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.subscriptions[eventType]
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug().Err(err).Msg("ws read error")
			}
			break
		}
		c.handleMessage(message)
	}
}

// handleMessage processes subscribe/unsubscribe requests.
func (c *Client) handleMessage(message []byte) {
	var msg struct {
		Type   string   `json:"type"`
		Events []string `json:"events"`
	}

	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}

	switch msg.Type {
	case "subscribe":
		c.subMu.Lock()
		for _, event := range msg.Events {
			c.subscriptions[EventType(event)] = true
		}
		c.subMu.Unlock()

	case "unsubscribe":
		c.subMu.Lock()
		for _, event := range msg.Events {
			delete(c.subscriptions, EventType(event))
		}
		c.subMu.Unlock()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
