package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetClientOrdersQueryIsNotConstructed = errors.New(
		"GetClientOrdersQuery must be created via NewGetClientOrdersQuery constructor",
	)
)

// GetClientOrdersQuery lists a client's order history, newest first.
//
// Example:
//
//	query, err := NewGetClientOrdersQuery(actor.ID())
//	if err != nil {
//	    return err
//	}
//	history, err := handler.Handle(ctx, query)
type GetClientOrdersQuery struct {
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetClientOrdersQuery(clientID kernel.UUID) (GetClientOrdersQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetClientOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	return GetClientOrdersQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetClientOrdersQuery) ClientID() kernel.UUID {
	return q.clientID
}

func (q GetClientOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClientOrdersQueryIsNotConstructed)
}
