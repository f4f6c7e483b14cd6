package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering subsystem. It owns its line
// items and their addon selections.
//
// Order follows these invariants:
//   - total equals subtotal plus delivery fee, and subtotal equals the sum of
//     item extended prices, at creation
//   - an order has at least one item
//   - status changes go through ChangeStatus, which checks the actor
//   - a courier can only be attached while the order is Dispatched
//
// version is the persisted row version. Repositories use it as the
// compare-and-swap token when writing the order back.
type Order struct {
	id            kernel.UUID
	clientID      kernel.UUID
	addressID     kernel.UUID
	branchID      kernel.UUID
	courierID     *kernel.UUID
	status        Status
	paymentMethod PaymentMethod
	subtotal      decimal.Decimal
	deliveryFee   decimal.Decimal
	total         decimal.Decimal
	items         []*Item
	createdAt     time.Time
	updatedAt     time.Time
	version       int
	isConstructed bool
}

// NewOrder creates a Paid order from priced items. Subtotal and total are
// computed here and never accepted from callers.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), productID, &sizeID, 2, decimal.RequireFromString("9.50"), nil)
//	o, err := order.NewOrder(kernel.NewUUID(), clientID, addressID, branchID, order.Cash,
//	    []*order.Item{item}, decimal.Zero)
//	// o.Subtotal() == 19.00, o.Total() == 19.00
func NewOrder(
	id, clientID, addressID, branchID kernel.UUID,
	paymentMethod PaymentMethod,
	items []*Item,
	deliveryFee decimal.Decimal,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Paid,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReferences(clientID, addressID, branchID),
		o.setPaymentMethod(paymentMethod),
		o.setItems(items),
		validateMoney("delivery fee", deliveryFee),
	); err != nil {
		return nil, err
	}

	o.deliveryFee = deliveryFee
	o.subtotal = decimal.Zero
	for _, item := range o.items {
		o.subtotal = o.subtotal.Add(item.ExtendedPrice())
	}
	o.total = o.subtotal.Add(o.deliveryFee)

	return o, nil
}

// Snapshot carries persisted state into RestoreOrder.
type Snapshot struct {
	ID            kernel.UUID
	ClientID      kernel.UUID
	AddressID     kernel.UUID
	BranchID      kernel.UUID
	CourierID     *kernel.UUID
	Status        Status
	PaymentMethod PaymentMethod
	Subtotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	Items         []*Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

// RestoreOrder rebuilds an order from storage. Stored amounts are trusted as
// snapshots; status and references are still validated. Items may be empty
// when a repository loads the header only.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		subtotal:      s.Subtotal,
		deliveryFee:   s.DeliveryFee,
		total:         s.Total,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setReferences(s.ClientID, s.AddressID, s.BranchID),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if s.CourierID != nil {
		if err := s.CourierID.Validate(); err != nil {
			return nil, err
		}
		c := *s.CourierID
		o.courierID = &c
	}

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	o.items = append([]*Item(nil), s.Items...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// Courier returns the assigned courier's ID, or nil if none is assigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	c := *o.courierID
	return &c
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Subtotal() decimal.Decimal {
	return o.subtotal
}

func (o *Order) DeliveryFee() decimal.Decimal {
	return o.deliveryFee
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// ProductsCount is the number of line items, not the sum of quantities.
func (o *Order) ProductsCount() int {
	return len(o.items)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int {
	return o.version
}

// BelongsToBranch reports whether the order was placed at branchID.
func (o *Order) BelongsToBranch(branchID kernel.UUID) bool {
	return o.branchID.IsEqual(branchID)
}

// IsAssignedTo reports whether courierID is the order's courier.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// ChangeStatus moves the order to next on behalf of a.
//
// Checks run in this order:
//   - restaurant staff need a branch (required value) and the order must be
//     in it (not found, so other branches' orders are not disclosed)
//   - couriers must be the assigned courier (access denied), before any
//     status check
//   - the transition must be legal for the actor's role (invalid value)
//
// It returns the previous status.
func (o *Order) ChangeStatus(a actor.Actor, next Status) (Status, error) {
	if err := a.Validate(); err != nil {
		return Unknown, err
	}

	switch a.Role() {
	case actor.Restaurant:
		branchID, err := a.RequireBranch()
		if err != nil {
			return Unknown, err
		}
		if !o.BelongsToBranch(branchID) {
			return Unknown, errs.NewObjectNotFoundErrorWithCause(
				"order", o.id.String(), fmt.Errorf("order is not in branch %s", branchID),
			)
		}
	case actor.Delivery:
		if !o.IsAssignedTo(a.ID()) {
			return Unknown, errs.NewAccessDeniedErrorWithCause(
				"order", o.id.String(), errors.New("actor is not the assigned courier"),
			)
		}
	case actor.Client, actor.Admin:
	}

	newStatus, err := o.status.Transition(a.Role(), next)
	if err != nil {
		return Unknown, err
	}

	previous := o.status
	o.status = newStatus
	o.touch()
	return previous, nil
}

// AssignCourier attaches courierID. Only dispatched orders take a courier;
// reassignment while still Dispatched is allowed.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to assign a courier", o.status),
		)
	}

	c := courierID
	o.courierID = &c
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setReferences(clientID, addressID, branchID kernel.UUID) error {
	if err := errors.Join(
		wrapRequired("client_id", clientID.Validate()),
		wrapRequired("address_id", addressID.Validate()),
		wrapRequired("branch_id", branchID.Validate()),
	); err != nil {
		return err
	}
	o.clientID = clientID
	o.addressID = addressID
	o.branchID = branchID
	return nil
}

func (o *Order) setPaymentMethod(pm PaymentMethod) error {
	if err := pm.Validate(); err != nil {
		return err
	}
	o.paymentMethod = pm
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]*Item(nil), items...)
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
