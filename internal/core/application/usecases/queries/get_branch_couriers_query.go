package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetBranchCouriersQueryIsNotConstructed = errors.New(
		"GetBranchCouriersQuery must be created via NewGetBranchCouriersQuery constructor",
	)
)

// GetBranchCouriersQuery lists the couriers assigned to a branch's zones.
type GetBranchCouriersQuery struct {
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBranchCouriersQuery(by actor.Actor) (GetBranchCouriersQuery, error) {
	branchID, err := by.RequireBranch()
	if err != nil {
		return GetBranchCouriersQuery{}, err
	}
	return GetBranchCouriersQuery{
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBranchCouriersQuery) BranchID() kernel.UUID {
	return q.branchID
}

func (q GetBranchCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchCouriersQueryIsNotConstructed)
}

// BranchCourier is a courier with every assignment it holds in the branch,
// active or not, and its DISPATCHED plus EN_ROUTE workload across all
// branches.
type BranchCourier struct {
	ID           kernel.UUID
	Name         string
	LastName     string
	Email        string
	ActiveOrders int
	Zones        []CourierZone
}

type CourierZone struct {
	ZoneID     kernel.UUID
	Name       string
	Active     bool
	AssignedAt time.Time
}
