package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetCourierOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierOrdersQueryHandler(db *gorm.DB) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db}
}

// Handle returns the courier's DISPATCHED and EN_ROUTE orders, oldest first,
// so the rider works through them in the order they left the kitchen.
func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context, query GetCourierOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, h.db,
		"o.courier_id = ? AND o.status IN ?",
		"o.created_at ASC, o.id",
		query.CourierID().Bytes(),
		[]string{order.Dispatched.String(), order.EnRoute.String()},
	)
}
