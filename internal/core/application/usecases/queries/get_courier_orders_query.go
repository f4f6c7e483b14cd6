package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetCourierOrdersQueryIsNotConstructed = errors.New(
		"GetCourierOrdersQuery must be created via NewGetCourierOrdersQuery constructor",
	)
)

// GetCourierOrdersQuery lists the orders a courier currently carries.
type GetCourierOrdersQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCourierOrdersQuery(courierID kernel.UUID) (GetCourierOrdersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("courier_id", err)
	}
	return GetCourierOrdersQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q GetCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOrdersQueryIsNotConstructed)
}
