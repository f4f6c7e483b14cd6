// Package zone models delivery zones: branch-scoped coverage areas that
// decide which couriers may take an order.
package zone

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a circle of radius maxDistanceKm around its branch. center is the
// branch location and may be unknown.
type Zone struct {
	id            kernel.UUID
	branchID      kernel.UUID
	name          string
	active        bool
	maxDistanceKm float64
	center        *kernel.GeoPoint
	isConstructed bool
}

func NewZone(
	id, branchID kernel.UUID,
	name string,
	active bool,
	maxDistanceKm float64,
	center *kernel.GeoPoint,
) (*Zone, error) {
	if err := errors.Join(id.Validate(), branchID.Validate()); err != nil {
		return nil, err
	}
	if maxDistanceKm < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"max delivery distance", fmt.Errorf("%v km is negative", maxDistanceKm),
		)
	}
	z := &Zone{
		id:            id,
		branchID:      branchID,
		name:          name,
		active:        active,
		maxDistanceKm: maxDistanceKm,
		isConstructed: true,
	}
	if center != nil {
		if err := center.Validate(); err != nil {
			return nil, err
		}
		c := *center
		z.center = &c
	}
	return z, nil
}

func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

func (z *Zone) ID() kernel.UUID {
	return z.id
}

func (z *Zone) BranchID() kernel.UUID {
	return z.branchID
}

func (z *Zone) Name() string {
	return z.name
}

func (z *Zone) IsActive() bool {
	return z.active
}

func (z *Zone) MaxDistanceKm() float64 {
	return z.maxDistanceKm
}

// Covers reports whether destination lies within the zone radius.
// When either the zone center or the destination is unknown, containment
// cannot be evaluated and the zone is treated as covering.
func (z *Zone) Covers(destination *kernel.GeoPoint) (bool, error) {
	if z.center == nil || destination == nil {
		return true, nil
	}
	d, err := z.center.DistanceKm(*destination)
	if err != nil {
		return false, err
	}
	return d <= z.maxDistanceKm, nil
}
