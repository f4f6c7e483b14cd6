package commands

import (
	"context"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DeliveryFeePolicy decides what a branch charges for delivering an order.
type DeliveryFeePolicy interface {
	Fee(ctx context.Context, branchID kernel.UUID, subtotal decimal.Decimal) (decimal.Decimal, error)
}

// FlatDeliveryFee charges the same amount for every order.
type FlatDeliveryFee struct {
	amount decimal.Decimal
}

func NewFlatDeliveryFee(amount decimal.Decimal) (FlatDeliveryFee, error) {
	if amount.IsNegative() {
		return FlatDeliveryFee{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery fee", fmt.Errorf("%s is negative", amount),
		)
	}
	return FlatDeliveryFee{amount: amount}, nil
}

func (f FlatDeliveryFee) Fee(_ context.Context, _ kernel.UUID, _ decimal.Decimal) (decimal.Decimal, error) {
	return f.amount, nil
}
