package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
)

// CourierRepository reads couriers, that is users holding the delivery role.
type CourierRepository interface {
	// Get returns the courier or errs.ErrObjectNotFound if the user does not
	// exist or lacks the delivery role.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetEligibleByZone returns couriers actively assigned to the zone with
	// their current workload, ordered by assignment age and then by id.
	GetEligibleByZone(ctx context.Context, zoneID kernel.UUID) ([]*courier.Courier, error)
}
