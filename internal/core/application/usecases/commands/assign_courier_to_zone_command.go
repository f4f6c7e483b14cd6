package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrAssignCourierToZoneCommandIsNotConstructed = errors.New(
	"AssignCourierToZoneCommand must be created via NewAssignCourierToZoneCommand constructor",
)

// AssignCourierToZoneCommand makes a courier eligible for a zone's orders.
type AssignCourierToZoneCommand struct {
	zoneID    kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierToZoneCommand(zoneID, courierID kernel.UUID) (AssignCourierToZoneCommand, error) {
	if err := errors.Join(zoneID.Validate(), courierID.Validate()); err != nil {
		return AssignCourierToZoneCommand{}, err
	}
	return AssignCourierToZoneCommand{
		zoneID:    zoneID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierToZoneCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierToZoneCommandIsNotConstructed)
}

func (c AssignCourierToZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

func (c AssignCourierToZoneCommand) CourierID() kernel.UUID {
	return c.courierID
}
