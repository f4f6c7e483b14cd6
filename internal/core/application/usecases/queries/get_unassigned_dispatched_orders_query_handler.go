package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUnassignedDispatchedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUnassignedDispatchedOrdersQueryHandler(db *gorm.DB) GetUnassignedDispatchedOrdersQueryHandler {
	return GetUnassignedDispatchedOrdersQueryHandler{db: db}
}

func (h GetUnassignedDispatchedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedDispatchedOrdersQuery,
) ([]UnassignedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]UnassignedOrder, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			branch_id
		FROM orders
		WHERE status = ? AND courier_id IS NULL
		ORDER BY updated_at, id
		LIMIT ?
	`, order.Dispatched.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, branchID uuid.UUID
		if err = rows.Scan(&id, &branchID); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		branch, idErr := kernel.UUIDFromBytes(branchID[:])
		if idErr != nil {
			return nil, idErr
		}
		pending = append(pending, UnassignedOrder{ID: orderID, BranchID: branch})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
