package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetBranchCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetBranchCouriersQueryHandler(db *gorm.DB) GetBranchCouriersQueryHandler {
	return GetBranchCouriersQueryHandler{db: db}
}

type branchCourierRow struct {
	ID           uuid.UUID
	Name         string
	Lastname     string
	Email        string
	ActiveOrders int
	ZoneID       uuid.UUID
	ZoneName     string
	IsActive     bool
	AssignedAt   time.Time
}

// Handle returns one entry per courier, ordered by name. A courier working
// several zones of the branch carries them all, oldest assignment first.
func (h GetBranchCouriersQueryHandler) Handle(ctx context.Context, query GetBranchCouriersQuery) ([]BranchCourier, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []branchCourierRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.lastname,
			u.email,
			(
				SELECT COUNT(*)
				FROM orders o
				WHERE o.courier_id = u.id AND o.status IN ?
			) AS active_orders,
			z.id AS zone_id,
			z.name AS zone_name,
			a.is_active,
			a.created_at AS assigned_at
		FROM delivery_zone_assignments a
		JOIN delivery_zones z ON z.id = a.zone_id
		JOIN users u ON u.id = a.user_id
		JOIN user_roles r ON r.user_id = u.id AND r.role = ?
		WHERE z.branch_id = ?
		ORDER BY u.name, u.lastname, u.id, a.created_at, z.id
	`, activeDeliveryStatuses(), actor.Delivery.String(), query.BranchID().Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]BranchCourier, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		ids, convErr := uuids(row.ID, row.ZoneID)
		if convErr != nil {
			return nil, convErr
		}

		i, seen := index[row.ID]
		if !seen {
			i = len(couriers)
			index[row.ID] = i
			couriers = append(couriers, BranchCourier{
				ID:           ids[0],
				Name:         row.Name,
				LastName:     row.Lastname,
				Email:        row.Email,
				ActiveOrders: row.ActiveOrders,
			})
		}
		couriers[i].Zones = append(couriers[i].Zones, CourierZone{
			ZoneID:     ids[1],
			Name:       row.ZoneName,
			Active:     row.IsActive,
			AssignedAt: row.AssignedAt,
		})
	}

	return couriers, nil
}

func activeDeliveryStatuses() []string {
	var statuses []string
	for _, s := range order.AllStatuses() {
		if s.IsActiveDelivery() {
			statuses = append(statuses, s.String())
		}
	}
	return statuses
}
