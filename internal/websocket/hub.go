package websocket

import (
	"sync"

	"envmonitor/internal/logger"
)

// Message is the envelope pushed to stream clients.
type Message struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

const defaultSubscriberBuffer = 16

// Hub fans broadcast messages out to subscribers. A subscriber whose
// buffer is full misses the message rather than blocking the sender.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	log    *logger.Logger
}

// Subscription receives hub messages on C until Close is called.
type Subscription struct {
	C    <-chan Message
	ch   chan Message
	hub  *Hub
	once sync.Once
}

func NewHub(log *logger.Logger, buffer int) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		log:    log,
	}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Message, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	h.log.Debugw("ws_subscriber_added", "total", n)
	return s
}

// Close detaches the subscription and closes C. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

// Broadcast delivers a message to every subscriber with buffer room and
// returns how many received it.
func (h *Hub) Broadcast(msgType string, data any) int {
	msg := Message{Type: msgType, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs {
		select {
		case s.ch <- msg:
			delivered++
		default:
			h.log.Debugw("ws_subscriber_slow", "type", msgType)
		}
	}
	return delivered
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
