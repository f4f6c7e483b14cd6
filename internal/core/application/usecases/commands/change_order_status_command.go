package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a new status on behalf of
// an actor. The raw status is normalized, so "en route" and "En-Route" both
// mean EN_ROUTE.
type ChangeOrderStatusCommand struct {
	orderID   kernel.UUID
	actor     actor.Actor
	newStatus order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	by actor.Actor,
	newStatus string,
) (ChangeOrderStatusCommand, error) {
	status, statusErr := order.ParseStatus(newStatus)
	if err := errors.Join(orderID.Validate(), by.Validate(), statusErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:   orderID,
		actor:     by,
		newStatus: status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}
