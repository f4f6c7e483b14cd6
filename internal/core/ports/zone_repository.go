package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"
)

// ZoneRepository reads delivery zones and maintains courier assignments to them.
type ZoneRepository interface {
	// GetActiveByBranch returns the branch's active zones ordered by id, each
	// carrying the branch location as its center when known.
	GetActiveByBranch(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error)

	Get(ctx context.Context, id kernel.UUID) (*zone.Zone, error)

	// AssignCourier creates or reactivates the assignment of courierID to zoneID.
	AssignCourier(ctx context.Context, zoneID, courierID kernel.UUID) error
}

// ZoneCache serves per-branch zone lists with a bounded staleness.
type ZoneCache interface {
	Zones(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error)
	Invalidate(branchID kernel.UUID)
	InvalidateAll()
	// PurgeExpired evicts stale entries and reports how many were removed.
	PurgeExpired() int
}
