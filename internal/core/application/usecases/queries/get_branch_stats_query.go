package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetBranchStatsQueryIsNotConstructed = errors.New(
		"GetBranchStatsQuery must be created via NewGetBranchStatsQuery constructor",
	)
)

// GetBranchStatsQuery counts a branch's orders per status.
type GetBranchStatsQuery struct {
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBranchStatsQuery(by actor.Actor) (GetBranchStatsQuery, error) {
	branchID, err := by.RequireBranch()
	if err != nil {
		return GetBranchStatsQuery{}, err
	}
	return GetBranchStatsQuery{
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBranchStatsQuery) BranchID() kernel.UUID {
	return q.branchID
}

func (q GetBranchStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchStatsQueryIsNotConstructed)
}

// BranchStats always carries every status, zero when the branch has none.
type BranchStats struct {
	BranchID kernel.UUID
	Total    int
	ByStatus map[order.Status]int
}
