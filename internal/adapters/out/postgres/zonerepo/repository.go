package zonerepo

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.ZoneRepository = (*GormZoneRepository)(nil)

const zoneSelect = `
	SELECT
		z.id,
		z.branch_id,
		z.name,
		z.is_active,
		z.max_delivery_distance_km,
		b.lat AS branch_lat,
		b.lng AS branch_lng
	FROM delivery_zones z
	JOIN branches b ON b.id = z.branch_id
`

// GormZoneRepository implements ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// GetActiveByBranch returns the branch's active zones ordered by id.
func (r *GormZoneRepository) GetActiveByBranch(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var rows []zoneRow
	err := r.db.WithContext(ctx).
		Raw(zoneSelect+" WHERE z.branch_id = ? AND z.is_active = ? ORDER BY z.id", branchID.Bytes(), true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	zones := make([]*zone.Zone, 0, len(rows))
	for _, row := range rows {
		z, zoneErr := toDomain(row)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// Get returns a zone whether or not it is active.
func (r *GormZoneRepository) Get(ctx context.Context, id kernel.UUID) (*zone.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rows []zoneRow
	if err := r.db.WithContext(ctx).Raw(zoneSelect+" WHERE z.id = ?", id.Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("zone", id.String())
	}
	return toDomain(rows[0])
}

// AssignCourier upserts on (user_id, zone_id).
func (r *GormZoneRepository) AssignCourier(ctx context.Context, zoneID, courierID kernel.UUID) error {
	if err := errors.Join(zoneID.Validate(), courierID.Validate()); err != nil {
		return err
	}

	assignment := ZoneAssignmentDTO{
		ID:        uuid.New(),
		UserID:    courierID.Bytes(),
		ZoneID:    zoneID.Bytes(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "zone_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_active"}),
		}).
		Create(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return errs.NewValueIsInvalidErrorWithCause("zone assignment", err)
		}
		return err
	}
	return nil
}
