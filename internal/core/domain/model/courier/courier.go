package courier

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a user holding the delivery role, seen from the assignment
// side: who they are and how many deliveries they currently carry.
//
// activeOrders is derived from orders in Dispatched or EnRoute assigned to
// the courier. It is never stored on the courier itself.
type Courier struct {
	id           kernel.UUID
	name         string
	activeOrders int
	guard        guard.ConstructorGuard
}

// NewCourier builds a courier candidate with its current workload.
func NewCourier(id kernel.UUID, name string, activeOrders int) (*Courier, error) {
	c := &Courier{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setActiveOrders(activeOrders),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

// ActiveOrders is the courier's workload.
func (c *Courier) ActiveOrders() int {
	return c.activeOrders
}

// IsLessLoadedThan reports whether c carries strictly fewer deliveries than other.
func (c *Courier) IsLessLoadedThan(other *Courier) bool {
	return other == nil || c.activeOrders < other.activeOrders
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setActiveOrders(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("active orders", fmt.Errorf("%d is negative", n))
	}
	c.activeOrders = n
	return nil
}
