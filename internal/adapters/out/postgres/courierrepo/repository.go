// Package courierrepo reads couriers: users holding the DELIVERY role,
// together with their current workload. Couriers have no table of their
// own; they are assembled from users, roles, zone assignments and orders.
package courierrepo

import (
	"context"
	"strings"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.CourierRepository = (*GormCourierRepository)(nil)

type courierRow struct {
	ID           uuid.UUID
	Name         string
	Lastname     string
	ActiveOrders int
}

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Get retrieves a courier by user ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rows []courierRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.lastname,
			(
				SELECT COUNT(*)
				FROM orders o
				WHERE o.courier_id = u.id AND o.status IN ?
			) AS active_orders
		FROM users u
		JOIN user_roles r ON r.user_id = u.id AND r.role = ?
		WHERE u.id = ?
	`, activeStatuses(), actor.Delivery.String(), id.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}

	return toDomain(rows[0])
}

// GetEligibleByZone returns the couriers with an active assignment to the
// zone. Order is by assignment age, then by user id, which is what breaks
// ties between equally loaded couriers.
func (r *GormCourierRepository) GetEligibleByZone(ctx context.Context, zoneID kernel.UUID) ([]*courier.Courier, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	var rows []courierRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.lastname,
			COUNT(o.id) AS active_orders
		FROM delivery_zone_assignments a
		JOIN users u ON u.id = a.user_id
		JOIN user_roles r ON r.user_id = u.id AND r.role = ?
		LEFT JOIN orders o ON o.courier_id = u.id AND o.status IN ?
		WHERE a.zone_id = ? AND a.is_active = ?
		GROUP BY u.id, u.name, u.lastname, a.created_at
		ORDER BY a.created_at, u.id
	`, actor.Delivery.String(), activeStatuses(), zoneID.Bytes(), true).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(rows))
	for _, row := range rows {
		c, convErr := toDomain(row)
		if convErr != nil {
			return nil, convErr
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// activeStatuses are the statuses that count toward a courier's workload.
func activeStatuses() []string {
	statuses := make([]string, 0, 2)
	for _, s := range order.AllStatuses() {
		if s.IsActiveDelivery() {
			statuses = append(statuses, s.String())
		}
	}
	return statuses
}

func toDomain(row courierRow) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(row.Name + " " + row.Lastname)
	return courier.NewCourier(id, name, row.ActiveOrders)
}
