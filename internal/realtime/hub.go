// Package realtime fans notifications out to connected subscribers by
// channel name, such as "branch:<id>" or "client:<id>". Delivery is fire and
// forget: nothing is stored, and a subscriber whose buffer is full misses
// the message instead of slowing the publisher down.
package realtime

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 32

// Message is one pushed event.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Subscriber is one connection's mailbox. Messages is closed by Hub.Drop.
type Subscriber struct {
	id   string
	send chan Message
}

func NewSubscriber(id string, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Subscriber{id: id, send: make(chan Message, buffer)}
}

func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) Messages() <-chan Message {
	return s.send
}

type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Subscriber]struct{}
	joined   map[*Subscriber]map[string]struct{}

	gauge  prometheus.Gauge
	logger *slog.Logger
}

type Option func(*Hub)

// WithSubscriberGauge tracks the number of subscribers known to the hub.
func WithSubscriberGauge(g prometheus.Gauge) Option {
	return func(h *Hub) { h.gauge = g }
}

func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		channels: make(map[string]map[*Subscriber]struct{}),
		joined:   make(map[*Subscriber]map[string]struct{}),
		logger:   logger.With("component", "realtime_hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish queues the event for every subscriber of channel and returns how
// many accepted it. It never blocks.
func (h *Hub) Publish(channel, event string, payload any) int {
	msg := Message{Event: event, Data: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.channels[channel] {
		select {
		case sub.send <- msg:
			delivered++
		default:
			h.logger.Warn("subscriber buffer full, message dropped",
				"subscriber", sub.id, "channel", channel, "event", event)
		}
	}
	return delivered
}

// Subscribe adds sub to channel. Subscribing twice is a no-op.
func (h *Hub) Subscribe(sub *Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.joined[sub]; !ok {
		h.joined[sub] = make(map[string]struct{})
		if h.gauge != nil {
			h.gauge.Inc()
		}
	}
	h.joined[sub][channel] = struct{}{}

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Subscriber]struct{})
		h.channels[channel] = members
	}
	members[sub] = struct{}{}
}

// Unsubscribe removes sub from channel. The subscriber stays registered.
func (h *Hub) Unsubscribe(sub *Subscriber, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leave(sub, channel)
	if rooms, ok := h.joined[sub]; ok {
		delete(rooms, channel)
	}
}

// Channels returns the channels sub is in, sorted.
func (h *Hub) Channels(sub *Subscriber) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.joined[sub]))
	for channel := range h.joined[sub] {
		out = append(out, channel)
	}
	sort.Strings(out)
	return out
}

// Drop removes sub from every channel and closes its mailbox. It is safe to
// call more than once.
func (h *Hub) Drop(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.joined[sub]
	if !ok {
		return
	}
	for channel := range rooms {
		h.leave(sub, channel)
	}
	delete(h.joined, sub)
	close(sub.send)

	if h.gauge != nil {
		h.gauge.Dec()
	}
}

// Register makes sub known to the hub before it joins any channel, so that
// Drop closes its mailbox even if it never subscribed.
func (h *Hub) Register(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.joined[sub]; ok {
		return
	}
	h.joined[sub] = make(map[string]struct{})
	if h.gauge != nil {
		h.gauge.Inc()
	}
}

func (h *Hub) leave(sub *Subscriber, channel string) {
	members, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(members, sub)
	if len(members) == 0 {
		delete(h.channels, channel)
	}
}
