package stream

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// SubscriberState is the subscriber's connection state.
type SubscriberState int32

const (
	SubscriberDisconnected SubscriberState = iota
	SubscriberConnecting
	SubscriberConnected
)

func (s SubscriberState) String() string {
	switch s {
	case SubscriberConnecting:
		return "connecting"
	case SubscriberConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// SubscriberConfig configures a Subscriber.
type SubscriberConfig struct {
	// URL is the hub's /ws endpoint.
	URL string

	// Events narrows the subscription. Empty means everything.
	Events []EventType

	// Reconnect backoff bounds.
	MinBackoff time.Duration
	MaxBackoff time.Duration

	// ReadTimeout bounds a single read. The hub pings inside this window.
	ReadTimeout time.Duration
}

// DefaultSubscriberConfig returns a config with working defaults.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:         url,
		MinBackoff:  time.Second,
		MaxBackoff:  30 * time.Second,
		ReadTimeout: 90 * time.Second,
	}
}

// Subscriber consumes a hub's event feed with automatic reconnection,
// for external consumers of a running daemon (bots, notifiers, tooling).
type Subscriber struct {
	config SubscriberConfig
	log    zerolog.Logger
	state  int32

	onEvent func(Event)
	onState func(SubscriberState)
}

// NewSubscriber creates a subscriber for the given feed.
func NewSubscriber(config SubscriberConfig, log zerolog.Logger) *Subscriber {
	if config.MinBackoff <= 0 {
		config.MinBackoff = time.Second
	}
	if config.MaxBackoff < config.MinBackoff {
		config.MaxBackoff = 30 * time.Second
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 90 * time.Second
	}
	return &Subscriber{config: config, log: log}
}

// OnEvent sets the event callback. Must be set before Run.
func (s *Subscriber) OnEvent(fn func(Event)) {
	s.onEvent = fn
}

// OnStateChange sets the state transition callback.
func (s *Subscriber) OnStateChange(fn func(SubscriberState)) {
	s.onState = fn
}

// State returns the current connection state.
func (s *Subscriber) State() SubscriberState {
	return SubscriberState(atomic.LoadInt32(&s.state))
}

func (s *Subscriber) setState(st SubscriberState) {
	old := SubscriberState(atomic.SwapInt32(&s.state, int32(st)))
	if old != st && s.onState != nil {
		s.onState(st)
	}
}

// Run connects and consumes events until ctx is cancelled, reconnecting
// with exponential backoff on failure.
func (s *Subscriber) Run(ctx context.Context) error {
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			s.setState(SubscriberDisconnected)
			return err
		}

		err := s.consume(ctx)
		s.setState(SubscriberDisconnected)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempts++
		delay := s.config.MinBackoff * time.Duration(1<<uint(min(attempts-1, 10)))
		if delay > s.config.MaxBackoff {
			delay = s.config.MaxBackoff
		}
		s.log.Warn().Err(err).Dur("retry_in", delay).Int("attempt", attempts).Msg("feed disconnected")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// consume runs one connection lifetime: dial, narrow the subscription,
// then read until the connection dies or ctx is cancelled.
func (s *Subscriber) consume(ctx context.Context) error {
	s.setState(SubscriberConnecting)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.config.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.setState(SubscriberConnected)
	s.log.Debug().Str("url", s.config.URL).Msg("feed connected")

	if len(s.config.Events) > 0 {
		if err := s.narrow(conn); err != nil {
			return err
		}
	}

	// Close the connection when ctx is cancelled so the read unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		for _, line := range splitFrames(raw) {
			var event Event
			if err := json.Unmarshal(line, &event); err != nil {
				s.log.Debug().Err(err).Msg("skipping malformed event")
				continue
			}
			if s.onEvent != nil {
				s.onEvent(event)
			}
		}
	}
}

// narrow replaces the default subscribe-to-everything with the
// configured event set.
func (s *Subscriber) narrow(conn *websocket.Conn) error {
	events := make([]string, len(s.config.Events))
	for i, e := range s.config.Events {
		events[i] = string(e)
	}

	drop := make([]string, 0, len(allEventTypes))
	keep := make(map[string]bool, len(events))
	for _, e := range events {
		keep[e] = true
	}
	for _, e := range allEventTypes {
		if !keep[string(e)] {
			drop = append(drop, string(e))
		}
	}

	msg := map[string]interface{}{"type": "unsubscribe", "events": drop}
	return conn.WriteJSON(msg)
}

// splitFrames splits a coalesced write into its newline-separated
// event payloads.
func splitFrames(raw []byte) [][]byte {
	var frames [][]byte
	start := 0
	for i, b := range raw {
		if b == '\n' {
			if i > start {
				frames = append(frames, raw[start:i])
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		frames = append(frames, raw[start:])
	}
	return frames
}
