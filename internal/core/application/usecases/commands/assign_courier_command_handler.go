package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
)

// AssignCourierResult describes a successful assignment.
type AssignCourierResult struct {
	Order     *order.Order
	CourierID kernel.UUID
	ZoneID    kernel.UUID
}

// AssignCourierCommandHandler assigns the least loaded courier working the
// zone that covers the order's address.
//
// Every failure after the order has been loaded is reported as an
// *AssignmentError:
//   - OUT_OF_COVERAGE when no active zone of the branch covers the address
//   - NO_COURIERS_AVAILABLE when the zone has no active courier
//   - ASSIGNMENT_ERROR for everything else, including infrastructure errors,
//     which are wrapped as the cause
//
// A missing order, or one that belongs to another branch, is reported as a
// not-found error so callers can answer 404.
type AssignCourierCommandHandler struct {
	uowFactory AssignmentUoWFactory
	locator    ZoneLocator
	selector   services.CourierSelector
	logger     *slog.Logger
}

func NewAssignCourierCommandHandler(
	uowFactory AssignmentUoWFactory,
	locator ZoneLocator,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		locator:    locator,
		selector:   services.NewCourierSelector(),
		logger:     logger.With("component", "assign_courier_handler"),
	}
}

func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	cmd AssignCourierCommand,
) (AssignCourierResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignCourierResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	dispatched, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignCourierResult{}, err
	}
	if !dispatched.BelongsToBranch(cmd.BranchID()) {
		return AssignCourierResult{}, errs.NewObjectNotFoundErrorWithCause("order", dispatched.ID().String(),
			fmt.Errorf("order is not in branch %s", cmd.BranchID()))
	}
	if dispatched.Status() != order.Dispatched {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError,
			fmt.Errorf("order %s is %s, not %s", dispatched.ID(), dispatched.Status(), order.Dispatched))
	}

	address, err := uow.Directory().Address(ctx, dispatched.AddressID())
	if err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	z, err := h.locator.Locate(ctx, cmd.BranchID(), address.Location)
	if errors.Is(err, services.ErrNoCoveringZone) {
		return AssignCourierResult{}, newAssignmentError(ReasonOutOfCoverage, err)
	}
	if err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	candidates, err := uow.CourierRepository().GetEligibleByZone(ctx, z.ID())
	if err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	selected, err := h.selector.SelectLeastLoaded(candidates)
	if errors.Is(err, services.ErrCourierNotFound) {
		return AssignCourierResult{}, newAssignmentError(ReasonNoCouriersAvailable,
			fmt.Errorf("zone %q has no active couriers", z.Name()))
	}
	if err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	if err = dispatched.AssignCourier(selected.ID()); err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	updated, err := orders.Update(ctx, dispatched)
	if err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignCourierResult{}, newAssignmentError(ReasonAssignmentError, err)
	}

	h.logger.InfoContext(ctx, "courier assigned",
		"order_id", updated.ID().String(),
		"courier_id", selected.ID().String(),
		"zone_id", z.ID().String(),
		"courier_workload", selected.ActiveOrders(),
	)

	return AssignCourierResult{
		Order:     updated,
		CourierID: selected.ID(),
		ZoneID:    z.ID(),
	}, nil
}
