package commands

import (
	"context"
	"log/slog"
)

// AssignCourierToZoneCommandHandler upserts an active zone assignment. Both
// the zone and the courier must exist; a user without the delivery role is
// not a courier and is reported as not found.
type AssignCourierToZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
	logger     *slog.Logger
}

func NewAssignCourierToZoneCommandHandler(
	uowFactory ZoneUoWFactory,
	logger *slog.Logger,
) AssignCourierToZoneCommandHandler {
	return AssignCourierToZoneCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "zone_assignment_handler"),
	}
}

func (h AssignCourierToZoneCommandHandler) Handle(ctx context.Context, cmd AssignCourierToZoneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zones := uow.ZoneRepository()

	z, err := zones.Get(ctx, cmd.ZoneID())
	if err != nil {
		return err
	}

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = zones.AssignCourier(ctx, z.ID(), c.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "courier assigned to zone",
		"zone_id", z.ID().String(),
		"branch_id", z.BranchID().String(),
		"courier_id", c.ID().String(),
	)
	return nil
}
