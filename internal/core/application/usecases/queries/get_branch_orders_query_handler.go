package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBranchOrdersQueryHandler backs the restaurant dashboard.
type GetBranchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetBranchOrdersQueryHandler(db *gorm.DB) GetBranchOrdersQueryHandler {
	return GetBranchOrdersQueryHandler{db: db}
}

// Handle returns the branch's orders, newest first.
func (h GetBranchOrdersQueryHandler) Handle(ctx context.Context, query GetBranchOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "o.branch_id = ?"
	args := []any{query.BranchID().Bytes()}
	if status := query.Status(); status != nil {
		where += " AND o.status = ?"
		args = append(args, status.String())
	}

	return loadOrderViews(ctx, h.db, where, "o.created_at DESC, o.id", args...)
}
