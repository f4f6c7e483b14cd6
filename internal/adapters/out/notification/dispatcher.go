// Package notification turns order events into realtime pushes. It
// implements ports.OrderNotifier on top of the realtime hub and, when
// configured, mirrors every event to an external log.
//
// Notifications are best effort. Nothing here returns an error to the
// caller: failures and panics are logged and counted, then swallowed.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"pizzeria/internal/core/ports"
	"pizzeria/internal/realtime"

	"github.com/prometheus/client_golang/prometheus"
)

var _ ports.OrderNotifier = (*Dispatcher)(nil)

// Publisher pushes an event to the subscribers of a channel and reports how
// many accepted it.
type Publisher interface {
	Publish(channel, event string, payload any) int
}

// Mirror copies an event to a durable sink keyed by order id.
type Mirror interface {
	Mirror(ctx context.Context, key, event string, payload any) error
}

type Dispatcher struct {
	hub     Publisher
	mirror  Mirror
	counter *prometheus.CounterVec
	logger  *slog.Logger
}

type Option func(*Dispatcher)

func WithMirror(m Mirror) Option {
	return func(d *Dispatcher) { d.mirror = m }
}

// WithCounter counts notifications by event and outcome.
func WithCounter(c *prometheus.CounterVec) Option {
	return func(d *Dispatcher) { d.counter = c }
}

func NewDispatcher(hub Publisher, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		hub:    hub,
		logger: logger.With("component", "notification_dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewOrder notifies the order's branch.
func (d *Dispatcher) NewOrder(ctx context.Context, event ports.NewOrderEvent) {
	d.dispatch(ctx, realtime.BranchChannel(event.BranchID), EventNewOrder, event.ID.String(), func() any {
		return newOrderPayload(event)
	})
}

// StatusChanged notifies the order's client.
func (d *Dispatcher) StatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	d.dispatch(ctx, realtime.ClientChannel(event.ClientID), EventStatusUpdate, event.ID.String(), func() any {
		return statusUpdatePayload(event)
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, channel, event, key string, build func() any) {
	defer func() {
		if r := recover(); r != nil {
			d.count(event, "panic")
			d.logger.ErrorContext(ctx, "notification panicked",
				"event", event, "channel", channel, "order_id", key, "panic", fmt.Sprint(r))
		}
	}()

	payload := build()

	delivered := d.hub.Publish(channel, event, payload)
	if delivered == 0 {
		d.count(event, "no_subscribers")
	} else {
		d.count(event, "delivered")
	}
	d.logger.DebugContext(ctx, "notification published",
		"event", event, "channel", channel, "order_id", key, "subscribers", delivered)

	if d.mirror == nil {
		return
	}
	if err := d.mirror.Mirror(ctx, key, event, payload); err != nil {
		d.count(event, "mirror_failed")
		d.logger.WarnContext(ctx, "notification mirror failed",
			"event", event, "order_id", key, "error", err)
		return
	}
	d.count(event, "mirrored")
}

func (d *Dispatcher) count(event, outcome string) {
	if d.counter != nil {
		d.counter.WithLabelValues(event, outcome).Inc()
	}
}
