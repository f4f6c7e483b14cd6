package notification_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/notification"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/metrics"
	"pizzeria/internal/realtime"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) Mirror(ctx context.Context, key, event string, payload any) error {
	return m.Called(ctx, key, event, payload).Error(0)
}

type panickingPublisher struct{}

func (panickingPublisher) Publish(string, string, any) int { panic("boom") }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var at = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newOrderEvent() ports.NewOrderEvent {
	return ports.NewOrderEvent{
		ID:            kernel.NewUUID(),
		ClientID:      kernel.NewUUID(),
		BranchID:      kernel.NewUUID(),
		Status:        order.Paid,
		PaymentMethod: order.Card,
		Subtotal:      decimal.RequireFromString("36"),
		DeliveryFee:   decimal.RequireFromString("2.5"),
		Total:         decimal.RequireFromString("38.5"),
		CreatedAt:     at,
		ProductsCount: 2,
		Timestamp:     at,
	}
}

func TestDispatcher_NewOrderGoesToBranch(t *testing.T) {
	// Given
	m := metrics.New()
	hub := realtime.NewHub(discard())
	staff := realtime.NewSubscriber("staff", 4)
	event := newOrderEvent()
	hub.Subscribe(staff, realtime.BranchChannel(event.BranchID))
	d := notification.NewDispatcher(hub, discard(), notification.WithCounter(m.Notifications))

	// When
	d.NewOrder(context.Background(), event)

	// Then
	require.Len(t, staff.Messages(), 1)
	msg := <-staff.Messages()
	assert.Equal(t, notification.EventNewOrder, msg.Event)
	payload, ok := msg.Data.(notification.NewOrderPayload)
	require.True(t, ok)
	assert.Equal(t, event.ID.String(), payload.ID)
	assert.Equal(t, "PAID", payload.Status)
	assert.Equal(t, "CARD", payload.PaymentMethod)
	assert.Equal(t, "36.00", payload.Subtotal)
	assert.Equal(t, "2.50", payload.DeliveryFee)
	assert.Equal(t, "38.50", payload.Total)
	assert.Equal(t, 2, payload.ProductsCount)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("new_order", "delivered")))
}

func TestDispatcher_StatusChangedGoesToClient(t *testing.T) {
	// Given
	hub := realtime.NewHub(discard())
	client := realtime.NewSubscriber("client", 4)
	courierID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(-34.60, -58.38)
	require.NoError(t, err)
	event := ports.StatusChangedEvent{
		ID:             kernel.NewUUID(),
		ClientID:       kernel.NewUUID(),
		BranchID:       kernel.NewUUID(),
		PreviousStatus: order.Dispatched,
		Status:         order.EnRoute,
		CourierID:      &courierID,
		Address: &ports.AddressSnapshot{
			ID:           kernel.NewUUID(),
			Address:      "Av. Corrientes 1234",
			Neighborhood: "Centro",
			Location:     &location,
		},
		UpdatedAt: at,
		Timestamp: at,
	}
	hub.Subscribe(client, realtime.ClientChannel(event.ClientID))
	d := notification.NewDispatcher(hub, discard())

	// When
	d.StatusChanged(context.Background(), event)

	// Then
	require.Len(t, client.Messages(), 1)
	msg := <-client.Messages()
	assert.Equal(t, notification.EventStatusUpdate, msg.Event)
	payload, ok := msg.Data.(notification.StatusUpdatePayload)
	require.True(t, ok)
	assert.Equal(t, "DISPATCHED", payload.PreviousStatus)
	assert.Equal(t, "EN_ROUTE", payload.Status)
	require.NotNil(t, payload.CourierID)
	assert.Equal(t, courierID.String(), *payload.CourierID)
	assert.Nil(t, payload.Client)
	require.NotNil(t, payload.Address)
	assert.Equal(t, -34.60, *payload.Address.Lat)
	assert.Equal(t, -58.38, *payload.Address.Lng)
}

func TestDispatcher_NoSubscribersIsCounted(t *testing.T) {
	m := metrics.New()
	d := notification.NewDispatcher(realtime.NewHub(discard()), discard(), notification.WithCounter(m.Notifications))

	d.NewOrder(context.Background(), newOrderEvent())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("new_order", "no_subscribers")))
}

func TestDispatcher_MirrorsByOrderID(t *testing.T) {
	// Given
	m := metrics.New()
	event := newOrderEvent()
	mirror := &MockMirror{}
	mirror.On("Mirror", mock.Anything, event.ID.String(), notification.EventNewOrder, mock.Anything).Return(nil).Once()
	d := notification.NewDispatcher(realtime.NewHub(discard()), discard(),
		notification.WithMirror(mirror), notification.WithCounter(m.Notifications))

	// When
	d.NewOrder(context.Background(), event)

	// Then
	mirror.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("new_order", "mirrored")))
}

func TestDispatcher_MirrorFailureIsSwallowed(t *testing.T) {
	m := metrics.New()
	mirror := &MockMirror{}
	mirror.On("Mirror", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	d := notification.NewDispatcher(realtime.NewHub(discard()), discard(),
		notification.WithMirror(mirror), notification.WithCounter(m.Notifications))

	assert.NotPanics(t, func() { d.NewOrder(context.Background(), newOrderEvent()) })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("new_order", "mirror_failed")))
}

func TestDispatcher_RecoversFromPanics(t *testing.T) {
	m := metrics.New()
	d := notification.NewDispatcher(panickingPublisher{}, discard(), notification.WithCounter(m.Notifications))

	assert.NotPanics(t, func() {
		d.StatusChanged(context.Background(), ports.StatusChangedEvent{ID: kernel.NewUUID(), ClientID: kernel.NewUUID()})
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("status_update", "panic")))
}
