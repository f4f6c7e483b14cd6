// Package order provides the Order aggregate of the pizzeria: an order with
// its line items and addon selections, and the status state machine that
// restaurant staff and couriers drive.
//
// The package includes:
//   - Order: aggregate root holding references, money and lifecycle state
//   - Item / AddonSelection: price snapshots taken when the order is placed
//   - Status: the closed set of lifecycle states with role-scoped transitions
//   - PaymentMethod: how the order was settled
//
// Key business rules:
//   - Orders start as Paid; total = subtotal + delivery fee
//   - Paid -> Preparing -> Dispatched is driven by restaurant staff of the
//     order's branch, who may also cancel any non-terminal order
//   - Dispatched -> EnRoute -> Delivered is driven by the assigned courier only
//   - Couriers are attached only while the order is Dispatched
package order
