package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetUnassignedDispatchedOrdersQueryIsNotConstructed = errors.New(
		"GetUnassignedDispatchedOrdersQuery must be created via NewGetUnassignedDispatchedOrdersQuery constructor",
	)
)

// GetUnassignedDispatchedOrdersQuery finds orders that left the kitchen but
// never got a courier, longest-waiting first.
type GetUnassignedDispatchedOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetUnassignedDispatchedOrdersQuery(limit int) (GetUnassignedDispatchedOrdersQuery, error) {
	if limit <= 0 {
		return GetUnassignedDispatchedOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, nil)
	}
	return GetUnassignedDispatchedOrdersQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetUnassignedDispatchedOrdersQuery) Limit() int {
	return q.limit
}

func (q GetUnassignedDispatchedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedDispatchedOrdersQueryIsNotConstructed)
}

type UnassignedOrder struct {
	ID       kernel.UUID
	BranchID kernel.UUID
}
