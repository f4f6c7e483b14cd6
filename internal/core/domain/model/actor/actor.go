// Package actor describes who is acting on the system: an authenticated user
// with exactly one role and, for restaurant staff, the branch they work at.
package actor

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the closed set of roles an actor can hold.
type Role string

const (
	Client     Role = "CLIENT"
	Restaurant Role = "RESTAURANT"
	Delivery   Role = "DELIVERY"
	Admin      Role = "ADMIN"
)

// ParseRole accepts role literals case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Client, Restaurant, Delivery, Admin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of a command or query.
type Actor struct {
	id       kernel.UUID
	role     Role
	branchID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewActor builds an actor. branchID is optional; restaurant commands that
// need it report its absence themselves.
func NewActor(id kernel.UUID, role Role, branchID *kernel.UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return Actor{}, err
		}
		b := *branchID
		branchID = &b
	}
	return Actor{id: id, role: role, branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// BranchID returns the actor's branch, or nil when the actor has none.
func (a Actor) BranchID() *kernel.UUID {
	if a.branchID == nil {
		return nil
	}
	b := *a.branchID
	return &b
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// RequireBranch returns the actor's branch or a validation error when the
// actor is not attached to any branch.
func (a Actor) RequireBranch() (kernel.UUID, error) {
	if a.branchID == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(
			"branch_id", fmt.Errorf("actor %s has no branch", a.id),
		)
	}
	return *a.branchID, nil
}
