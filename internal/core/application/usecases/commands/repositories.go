// Package commands contains business operations that modify system state.
// Every command is built through a guarded constructor and executed by a
// handler that owns its transaction through a unit of work.
package commands

import (
	"context"

	"pizzeria/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs,
// bound to one transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	DirectoryFactory interface {
		Directory() ports.Directory
	}

	// OrderUoW manages transactions for order-only operations: creation and
	// status changes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW spans the order, the courier roster and the delivery
	// address for automatic courier assignment.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   couriers, err := uow.CourierRepository().GetEligibleByZone(ctx, zoneID)
	//   // ... assign and update
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		DirectoryFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// ZoneUoW manages courier-to-zone assignments.
	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
		CourierRepoFactory
	}

	ZoneUoWFactory interface {
		Create() ZoneUoW
	}
)
