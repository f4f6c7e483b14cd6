// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, directory lookups, caching and notification.
package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items and addon selections
	// in one statement. References that do not exist surface as
	// errs.ErrValueIsInvalid.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order header back using its version as a
	// compare-and-swap token. A stale version returns errs.ErrConflict; on
	// success the aggregate is re-read so its version is current.
	Update(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get loads the order header. Items are not loaded.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
