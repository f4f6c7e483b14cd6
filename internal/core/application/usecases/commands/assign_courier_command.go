package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand picks a courier for a dispatched order of a branch.
// The delivery address is resolved from the order itself.
//
// Example:
//
//	cmd, _ := NewAssignCourierCommand(orderID, branchID)
//	result, err := handler.Handle(ctx, cmd)
//	var assignmentErr *AssignmentError
//	if errors.As(err, &assignmentErr) && assignmentErr.Reason == ReasonNoCouriersAvailable {
//	    // nobody is working the zone right now
//	}
type AssignCourierCommand struct {
	orderID  kernel.UUID
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(orderID, branchID kernel.UUID) (AssignCourierCommand, error) {
	if err := errors.Join(orderID.Validate(), branchID.Validate()); err != nil {
		return AssignCourierCommand{}, err
	}
	return AssignCourierCommand{
		orderID:  orderID,
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignCourierCommand) BranchID() kernel.UUID {
	return c.branchID
}
