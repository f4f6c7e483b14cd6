package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetClientOrdersQueryHandler reads the order history shown on the client's
// "my orders" screen, including what was ordered and at which prices.
type GetClientOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetClientOrdersQueryHandler(db *gorm.DB) GetClientOrdersQueryHandler {
	return GetClientOrdersQueryHandler{db: db}
}

func (h GetClientOrdersQueryHandler) Handle(ctx context.Context, query GetClientOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, h.db,
		"o.client_id = ?",
		"o.created_at DESC, o.id",
		query.ClientID().Bytes(),
	)
}
