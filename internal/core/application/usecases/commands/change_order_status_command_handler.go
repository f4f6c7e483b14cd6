package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
)

// CourierAssigner assigns a courier to a dispatched order.
// AssignCourierCommandHandler is the production implementation.
type CourierAssigner interface {
	Handle(ctx context.Context, cmd AssignCourierCommand) (AssignCourierResult, error)
}

// ChangeOrderStatusCommandHandler applies a status transition.
//
// The transition commits on its own. When the order enters Dispatched the
// handler then asks the assigner for a courier in a separate transaction; an
// assignment failure is logged and leaves the order dispatched without a
// courier for the retry job to pick up. Finally the client is notified.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   CourierAssigner
	directory  ports.Directory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	assigner CourierAssigner,
	directory ports.Directory,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		directory:  directory,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle returns the order as it stands after the transition and, for
// dispatched orders, after the assignment attempt.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, previous, err := h.transition(ctx, cmd)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", updated.ID().String(),
		"from", previous.String(),
		"to", updated.Status().String(),
		"actor_role", cmd.Actor().Role().String(),
	)

	if updated.Status() == order.Dispatched {
		updated = h.assign(ctx, updated)
	}

	h.notify(ctx, updated, previous)

	return updated, nil
}

func (h ChangeOrderStatusCommandHandler) transition(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.Unknown, err
	}

	previous, err := current.ChangeStatus(cmd.Actor(), cmd.NewStatus())
	if err != nil {
		return nil, order.Unknown, err
	}

	updated, err := repo.Update(ctx, current)
	if err != nil {
		return nil, order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.Unknown, err
	}

	return updated, previous, nil
}

func (h ChangeOrderStatusCommandHandler) assign(ctx context.Context, dispatched *order.Order) *order.Order {
	cmd, err := NewAssignCourierCommand(dispatched.ID(), dispatched.BranchID())
	if err != nil {
		h.logger.ErrorContext(ctx, "cannot build assignment", "order_id", dispatched.ID().String(), "error", err)
		return dispatched
	}

	result, err := h.assigner.Handle(ctx, cmd)
	if err != nil {
		var assignmentErr *AssignmentError
		if errors.As(err, &assignmentErr) {
			h.logger.WarnContext(ctx, "order dispatched without courier",
				"order_id", dispatched.ID().String(),
				"reason", string(assignmentErr.Reason),
				"error", err,
			)
		} else {
			h.logger.ErrorContext(ctx, "courier assignment failed",
				"order_id", dispatched.ID().String(),
				"error", err,
			)
		}
		return dispatched
	}

	return result.Order
}

func (h ChangeOrderStatusCommandHandler) notify(ctx context.Context, o *order.Order, previous order.Status) {
	event := ports.StatusChangedEvent{
		ID:             o.ID(),
		ClientID:       o.ClientID(),
		BranchID:       o.BranchID(),
		PreviousStatus: previous,
		Status:         o.Status(),
		CourierID:      o.Courier(),
		UpdatedAt:      o.UpdatedAt(),
		Timestamp:      time.Now().UTC(),
	}

	if client, err := h.directory.Client(ctx, o.ClientID()); err == nil {
		event.Client = &client
	} else {
		h.logger.WarnContext(ctx, "client snapshot unavailable", "order_id", o.ID().String(), "error", err)
	}

	if address, err := h.directory.Address(ctx, o.AddressID()); err == nil {
		event.Address = &address
	} else {
		h.logger.WarnContext(ctx, "address snapshot unavailable", "order_id", o.ID().String(), "error", err)
	}

	h.notifier.StatusChanged(ctx, event)
}
