package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// ZoneLocator resolves the delivery zone of an address for a branch using
// the cached zone list.
type ZoneLocator struct {
	cache   ports.ZoneCache
	matcher services.ZoneMatcher
}

func NewZoneLocator(cache ports.ZoneCache) ZoneLocator {
	return ZoneLocator{cache: cache, matcher: services.NewZoneMatcher()}
}

// Locate returns services.ErrNoCoveringZone when the branch does not deliver
// to destination. destination may be nil for addresses without coordinates.
func (l ZoneLocator) Locate(
	ctx context.Context,
	branchID kernel.UUID,
	destination *kernel.GeoPoint,
) (*zone.Zone, error) {
	zones, err := l.cache.Zones(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return l.matcher.Match(zones, destination)
}
