package services

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"
)

// ErrNoCoveringZone is returned when none of a branch's active zones covers
// the destination.
var ErrNoCoveringZone = errors.New("no active zone covers the address")

// ZoneMatcher finds the zone responsible for a delivery address. Zones are
// examined in the given order and the first active zone whose radius
// contains the destination wins.
type ZoneMatcher struct{}

func NewZoneMatcher() ZoneMatcher {
	return ZoneMatcher{}
}

// Match returns the first covering active zone. destination may be nil when
// the address has no coordinates; see zone.Zone.Covers.
func (m ZoneMatcher) Match(zones []*zone.Zone, destination *kernel.GeoPoint) (*zone.Zone, error) {
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if !z.IsActive() {
			continue
		}
		covers, err := z.Covers(destination)
		if err != nil {
			return nil, err
		}
		if covers {
			return z, nil
		}
	}
	return nil, ErrNoCoveringZone
}
