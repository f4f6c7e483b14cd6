package queries

import (
	"context"

	"pizzeria/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetBranchStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetBranchStatsQueryHandler(db *gorm.DB) GetBranchStatsQueryHandler {
	return GetBranchStatsQueryHandler{db: db}
}

func (h GetBranchStatsQueryHandler) Handle(ctx context.Context, query GetBranchStatsQuery) (BranchStats, error) {
	if err := query.Validate(); err != nil {
		return BranchStats{}, err
	}

	stats := BranchStats{
		BranchID: query.BranchID(),
		ByStatus: make(map[order.Status]int),
	}
	for _, status := range order.AllStatuses() {
		stats.ByStatus[status] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		WHERE branch_id = ?
		GROUP BY status
	`, query.BranchID().Bytes()).Rows()
	if err != nil {
		return BranchStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var literal string
		var count int
		if err = rows.Scan(&literal, &count); err != nil {
			return BranchStats{}, err
		}

		status, parseErr := order.ParseStatus(literal)
		if parseErr != nil {
			return BranchStats{}, parseErr
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}

	if err = rows.Err(); err != nil {
		return BranchStats{}, err
	}

	return stats, nil
}
