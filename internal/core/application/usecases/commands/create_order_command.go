package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for a client. Prices are never taken
// from the caller; lines carry only what was chosen.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID, addressID, branchID, "card", []services.LineRequest{
//	    {ProductID: pizzaID, Quantity: 2, SizeID: &largeID, AddonIDs: []kernel.UUID{cheeseID}},
//	    {ProductID: sodaID, Quantity: 1},
//	})
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID      kernel.UUID
	addressID     kernel.UUID
	branchID      kernel.UUID
	paymentMethod order.PaymentMethod
	lines         []services.LineRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. An empty payment method
// means cash. Per-line checks such as quantity are left to pricing so the
// failing line can be reported by index.
func NewCreateOrderCommand(
	clientID, addressID, branchID kernel.UUID,
	paymentMethod string,
	lines []services.LineRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReference("client_id", &cmd.clientID, clientID),
		cmd.setReference("id_address", &cmd.addressID, addressID),
		cmd.setReference("id_branch", &cmd.branchID, branchID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

func (c CreateOrderCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) Lines() []services.LineRequest {
	return append([]services.LineRequest(nil), c.lines...)
}

func (c *CreateOrderCommand) setReference(param string, dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(raw string) error {
	pm, err := order.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.paymentMethod = pm
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.LineRequest) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	c.lines = append([]services.LineRequest(nil), lines...)
	return nil
}
