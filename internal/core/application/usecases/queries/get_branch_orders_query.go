package queries

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetBranchOrdersQueryIsNotConstructed = errors.New(
		"GetBranchOrdersQuery must be created via NewGetBranchOrdersQuery constructor",
	)
)

// GetBranchOrdersQuery lists the orders of the staff member's branch,
// optionally narrowed to one status.
type GetBranchOrdersQuery struct {
	branchID kernel.UUID
	status   *order.Status

	guard guard.ConstructorGuard
}

// NewGetBranchOrdersQuery takes the branch from the actor's claims. A blank
// status means no filter; anything else must normalize to a known status.
func NewGetBranchOrdersQuery(by actor.Actor, status string) (GetBranchOrdersQuery, error) {
	branchID, err := by.RequireBranch()
	if err != nil {
		return GetBranchOrdersQuery{}, err
	}

	var filter *order.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return GetBranchOrdersQuery{}, err
		}
		filter = &parsed
	}

	return GetBranchOrdersQuery{
		branchID: branchID,
		status:   filter,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBranchOrdersQuery) BranchID() kernel.UUID {
	return q.branchID
}

// Status returns nil when the listing is unfiltered.
func (q GetBranchOrdersQuery) Status() *order.Status {
	return q.status
}

func (q GetBranchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchOrdersQueryIsNotConstructed)
}
