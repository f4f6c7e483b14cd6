// Package catalog holds the read-only catalog reference data the pricing
// engine consumes. The catalog is managed elsewhere; this package only
// models what ordering needs from it.
package catalog

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	ErrAddonIsNotConstructed   = errors.New("Addon must be created via NewAddon constructor")
)

// Product is a sellable item. A product either carries a fixed price or is
// priced by its category and the chosen size.
type Product struct {
	id            kernel.UUID
	categoryID    kernel.UUID
	name          string
	fixedPrice    *decimal.Decimal
	available     bool
	isConstructed bool
}

func NewProduct(id, categoryID kernel.UUID, name string, fixedPrice *decimal.Decimal, available bool) (Product, error) {
	if err := errors.Join(id.Validate(), categoryID.Validate()); err != nil {
		return Product{}, err
	}
	if fixedPrice != nil && fixedPrice.IsNegative() {
		return Product{}, errs.NewValueIsInvalidErrorWithCause("fixed price", fmt.Errorf("%s is negative", fixedPrice))
	}

	p := Product{id: id, categoryID: categoryID, name: name, available: available, isConstructed: true}
	if fixedPrice != nil {
		price := *fixedPrice
		p.fixedPrice = &price
	}
	return p, nil
}

func (p Product) Validate() error {
	if !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p Product) ID() kernel.UUID {
	return p.id
}

func (p Product) CategoryID() kernel.UUID {
	return p.categoryID
}

func (p Product) Name() string {
	return p.name
}

// FixedPrice returns the product's own price, or nil when it is size-priced.
func (p Product) FixedPrice() *decimal.Decimal {
	if p.fixedPrice == nil {
		return nil
	}
	price := *p.fixedPrice
	return &price
}

func (p Product) IsAvailable() bool {
	return p.available
}

// Addon is an extra that can be added to a line item; its price depends on size.
type Addon struct {
	id            kernel.UUID
	name          string
	isConstructed bool
}

func NewAddon(id kernel.UUID, name string) (Addon, error) {
	if err := id.Validate(); err != nil {
		return Addon{}, err
	}
	return Addon{id: id, name: name, isConstructed: true}, nil
}

func (a Addon) Validate() error {
	if !a.isConstructed {
		return ErrAddonIsNotConstructed
	}
	return nil
}

func (a Addon) ID() kernel.UUID {
	return a.id
}

func (a Addon) Name() string {
	return a.name
}
