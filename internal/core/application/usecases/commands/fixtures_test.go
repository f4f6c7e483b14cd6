package commands_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/zone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func storedOrder(t *testing.T, status order.Status, branchID kernel.UUID, courierID *kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		ClientID:      kernel.NewUUID(),
		AddressID:     kernel.NewUUID(),
		BranchID:      branchID,
		CourierID:     courierID,
		Status:        status,
		PaymentMethod: order.Cash,
		Subtotal:      money("20.00"),
		DeliveryFee:   decimal.Zero,
		Total:         money("20.00"),
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       3,
	})
	require.NoError(t, err)
	return o
}

func staff(t *testing.T, branchID kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), actor.Restaurant, &branchID)
	require.NoError(t, err)
	return a
}

func rider(t *testing.T, id kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, actor.Delivery, nil)
	require.NoError(t, err)
	return a
}

func geo(t *testing.T, lat, lng float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return &p
}

func deliveryZone(t *testing.T, branchID kernel.UUID, radiusKm float64) *zone.Zone {
	t.Helper()
	z, err := zone.NewZone(kernel.NewUUID(), branchID, "Centro", true, radiusKm, geo(t, -34.6037, -58.3816))
	require.NoError(t, err)
	return z
}

func newCourier(t *testing.T, name string, workload int) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, workload)
	require.NoError(t, err)
	return c
}
