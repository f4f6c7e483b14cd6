package order

import (
	"fmt"
	"strings"

	"pizzeria/internal/pkg/errs"
)

// PaymentMethod records how the client settled the order. Payment itself
// happens before the order reaches this system.
type PaymentMethod string

const (
	Cash     PaymentMethod = "CASH"
	Card     PaymentMethod = "CARD"
	Transfer PaymentMethod = "TRANSFER"
)

// DefaultPaymentMethod is used when the client does not send one.
const DefaultPaymentMethod = Cash

// legacyPaymentMethods are the Spanish literals older clients still send.
var legacyPaymentMethods = map[string]PaymentMethod{
	"EFECTIVO":      Cash,
	"TARJETA":       Card,
	"TRANSFERENCIA": Transfer,
}

// ParsePaymentMethod returns DefaultPaymentMethod for a blank input and
// maps legacy literals such as "Efectivo" onto their canonical value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPaymentMethod, nil
	}
	if pm, ok := legacyPaymentMethods[strings.ToUpper(s)]; ok {
		return pm, nil
	}
	pm := PaymentMethod(strings.ToUpper(s))
	if err := pm.Validate(); err != nil {
		return "", err
	}
	return pm, nil
}

func (p PaymentMethod) Validate() error {
	switch p {
	case Cash, Card, Transfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_method", fmt.Errorf("%q is not one of CASH, CARD, TRANSFER", string(p)),
		)
	}
}

func (p PaymentMethod) String() string {
	return string(p)
}
