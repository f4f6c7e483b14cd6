package services

import (
	"context"
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineIsUnresolvable marks a requested line the catalog cannot price.
var ErrLineIsUnresolvable = errors.New("line cannot be priced")

// PriceBook is the catalog as seen by pricing. Lookups of rows that do not
// exist must return an error wrapping errs.ErrObjectNotFound; any other error
// is treated as an infrastructure failure and passed through unchanged.
type PriceBook interface {
	Product(ctx context.Context, id kernel.UUID) (catalog.Product, error)
	CategoryPrice(ctx context.Context, categoryID, sizeID kernel.UUID) (decimal.Decimal, error)
	Addon(ctx context.Context, id kernel.UUID) (catalog.Addon, error)
	AddonPrice(ctx context.Context, addonID, sizeID kernel.UUID) (decimal.Decimal, error)
}

// LineRequest is one requested product line.
type LineRequest struct {
	ProductID kernel.UUID
	Quantity  int
	SizeID    *kernel.UUID
	AddonIDs  []kernel.UUID
}

// PricedAddon is an addon with the price resolved for its line's size.
type PricedAddon struct {
	AddonID kernel.UUID
	Price   decimal.Decimal
}

// PricedLine is a resolved line: UnitPrice = BasePrice + Σ addon prices.
type PricedLine struct {
	ProductID     kernel.UUID
	SizeID        *kernel.UUID
	Quantity      int
	BasePrice     decimal.Decimal
	Addons        []PricedAddon
	UnitPrice     decimal.Decimal
	ExtendedPrice decimal.Decimal
}

// Quote is the priced result of a whole order request.
type Quote struct {
	Lines    []PricedLine
	Subtotal decimal.Decimal
}

// PricingEngine resolves unit prices for requested lines against the catalog.
//
// Resolution rules per line:
//   - the product must exist and be available; quantity must be positive
//   - a fixed-price product uses its price verbatim
//   - otherwise a size is required and the (category, size) price must exist
//   - every addon must exist and have a price for the line's size
//
// The first unresolvable line aborts the quote with a validation error that
// names it as products[i]. The engine has no side effects.
type PricingEngine struct{}

func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

func (e PricingEngine) Quote(ctx context.Context, requests []LineRequest, book PriceBook) (Quote, error) {
	if len(requests) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("products")
	}

	quote := Quote{
		Lines:    make([]PricedLine, 0, len(requests)),
		Subtotal: decimal.Zero,
	}

	for i, req := range requests {
		line, err := e.priceLine(ctx, req, book)
		if err != nil {
			return Quote{}, lineError(i, err)
		}
		quote.Lines = append(quote.Lines, line)
		quote.Subtotal = quote.Subtotal.Add(line.ExtendedPrice)
	}

	return quote, nil
}

func (e PricingEngine) priceLine(ctx context.Context, req LineRequest, book PriceBook) (PricedLine, error) {
	if req.Quantity <= 0 {
		return PricedLine{}, unresolvable("quantity %d is not greater than 0", req.Quantity)
	}

	product, err := book.Product(ctx, req.ProductID)
	if err != nil {
		return PricedLine{}, err
	}
	if !product.IsAvailable() {
		return PricedLine{}, unresolvable("product %s is not available", product.ID())
	}

	base, err := e.basePrice(ctx, product, req.SizeID, book)
	if err != nil {
		return PricedLine{}, err
	}

	line := PricedLine{
		ProductID: req.ProductID,
		SizeID:    req.SizeID,
		Quantity:  req.Quantity,
		BasePrice: base,
		Addons:    make([]PricedAddon, 0, len(req.AddonIDs)),
		UnitPrice: base,
	}

	for _, addonID := range req.AddonIDs {
		price, addonErr := e.addonPrice(ctx, addonID, req.SizeID, book)
		if addonErr != nil {
			return PricedLine{}, addonErr
		}
		line.Addons = append(line.Addons, PricedAddon{AddonID: addonID, Price: price})
		line.UnitPrice = line.UnitPrice.Add(price)
	}

	line.ExtendedPrice = line.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	return line, nil
}

func (e PricingEngine) basePrice(
	ctx context.Context,
	product catalog.Product,
	sizeID *kernel.UUID,
	book PriceBook,
) (decimal.Decimal, error) {
	if fixed := product.FixedPrice(); fixed != nil {
		return *fixed, nil
	}
	if sizeID == nil {
		return decimal.Zero, unresolvable("product %s requires a size", product.ID())
	}
	price, err := book.CategoryPrice(ctx, product.CategoryID(), *sizeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no price for product %s in size %s: %w", product.ID(), sizeID, err)
	}
	return price, nil
}

func (e PricingEngine) addonPrice(
	ctx context.Context,
	addonID kernel.UUID,
	sizeID *kernel.UUID,
	book PriceBook,
) (decimal.Decimal, error) {
	if _, err := book.Addon(ctx, addonID); err != nil {
		return decimal.Zero, err
	}
	if sizeID == nil {
		return decimal.Zero, unresolvable("addon %s requires the line to have a size", addonID)
	}
	price, err := book.AddonPrice(ctx, addonID, *sizeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no price for addon %s in size %s: %w", addonID, sizeID, err)
	}
	return price, nil
}

// lineError turns a resolution failure into a validation error for line i.
// Lookup failures other than catalog misses are returned unchanged.
func lineError(i int, err error) error {
	if errors.Is(err, ErrLineIsUnresolvable) || errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("products[%d]", i), err)
	}
	return err
}

func unresolvable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLineIsUnresolvable, fmt.Sprintf(format, args...))
}
