package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// NewOrderEvent is published to the branch when an order is placed.
type NewOrderEvent struct {
	ID            kernel.UUID
	ClientID      kernel.UUID
	BranchID      kernel.UUID
	Status        order.Status
	PaymentMethod order.PaymentMethod
	Subtotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
	ProductsCount int
	Timestamp     time.Time
}

// StatusChangedEvent is published to the client when an order changes status.
type StatusChangedEvent struct {
	ID             kernel.UUID
	ClientID       kernel.UUID
	BranchID       kernel.UUID
	PreviousStatus order.Status
	Status         order.Status
	CourierID      *kernel.UUID
	Client         *ClientSnapshot
	Address        *AddressSnapshot
	UpdatedAt      time.Time
	Timestamp      time.Time
}

// OrderNotifier pushes order events to interested parties. Delivery is best
// effort: implementations log failures and never report them to callers.
type OrderNotifier interface {
	NewOrder(ctx context.Context, event NewOrderEvent)
	StatusChanged(ctx context.Context, event StatusChangedEvent)
}
