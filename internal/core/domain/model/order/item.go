package order

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrItemIsNotConstructed           = errors.New("Item must be created via NewItem constructor")
	ErrAddonSelectionIsNotConstructed = errors.New("AddonSelection must be created via NewAddonSelection constructor")
)

// AddonSelection is an addon chosen for a line item with the price it had
// when the order was placed.
type AddonSelection struct {
	id              kernel.UUID
	addonID         kernel.UUID
	priceAtPurchase decimal.Decimal
	isConstructed   bool
}

func NewAddonSelection(id, addonID kernel.UUID, price decimal.Decimal) (AddonSelection, error) {
	if err := errors.Join(id.Validate(), addonID.Validate(), validateMoney("addon price", price)); err != nil {
		return AddonSelection{}, err
	}
	return AddonSelection{id: id, addonID: addonID, priceAtPurchase: price, isConstructed: true}, nil
}

func (a AddonSelection) Validate() error {
	if !a.isConstructed {
		return ErrAddonSelectionIsNotConstructed
	}
	return nil
}

func (a AddonSelection) ID() kernel.UUID {
	return a.id
}

func (a AddonSelection) AddonID() kernel.UUID {
	return a.addonID
}

func (a AddonSelection) PriceAtPurchase() decimal.Decimal {
	return a.priceAtPurchase
}

// Item is one product line of an order. pricePerUnit is a snapshot that
// already includes the addon prices; later catalog changes never affect it.
type Item struct {
	id            kernel.UUID
	productID     kernel.UUID
	sizeID        *kernel.UUID
	quantity      int
	pricePerUnit  decimal.Decimal
	addons        []AddonSelection
	isConstructed bool
}

func NewItem(
	id, productID kernel.UUID,
	sizeID *kernel.UUID,
	quantity int,
	pricePerUnit decimal.Decimal,
	addons []AddonSelection,
) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setSizeID(sizeID),
		item.setQuantity(quantity),
		item.setPrice(pricePerUnit, addons),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// SizeID is nil for fixed-price products.
func (i *Item) SizeID() *kernel.UUID {
	if i.sizeID == nil {
		return nil
	}
	s := *i.sizeID
	return &s
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) PricePerUnit() decimal.Decimal {
	return i.pricePerUnit
}

func (i *Item) Addons() []AddonSelection {
	out := make([]AddonSelection, len(i.addons))
	copy(out, i.addons)
	return out
}

// ExtendedPrice is pricePerUnit × quantity.
func (i *Item) ExtendedPrice() decimal.Decimal {
	return i.pricePerUnit.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setSizeID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	s := *id
	i.sizeID = &s
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

// setPrice requires the unit price to cover at least the addons it includes.
func (i *Item) setPrice(pricePerUnit decimal.Decimal, addons []AddonSelection) error {
	if err := validateMoney("price per unit", pricePerUnit); err != nil {
		return err
	}

	addonTotal := decimal.Zero
	for _, a := range addons {
		if err := a.Validate(); err != nil {
			return err
		}
		addonTotal = addonTotal.Add(a.priceAtPurchase)
	}
	if pricePerUnit.LessThan(addonTotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"price per unit",
			fmt.Errorf("%s is less than the addon total %s", pricePerUnit.StringFixed(2), addonTotal.StringFixed(2)),
		)
	}

	i.pricePerUnit = pricePerUnit
	i.addons = make([]AddonSelection, len(addons))
	copy(i.addons, addons)
	return nil
}

func validateMoney(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", amount.String()))
	}
	return nil
}
