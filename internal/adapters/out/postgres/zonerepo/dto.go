// Package zonerepo persists delivery zones and the couriers assigned to them.
package zonerepo

import (
	"time"

	"pizzeria/internal/adapters/out/postgres/directoryrepo"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO is a delivery zone: a radius around its branch.
type ZoneDTO struct {
	ID                    uuid.UUID                `gorm:"type:uuid;primaryKey"`
	BranchID              uuid.UUID                `gorm:"type:uuid;not null;index"`
	Branch                *directoryrepo.BranchDTO `gorm:"foreignKey:BranchID"`
	Name                  string                   `gorm:"type:varchar(255);not null"`
	IsActive              bool                     `gorm:"not null"`
	MaxDeliveryDistanceKm float64                  `gorm:"column:max_delivery_distance_km;not null"`
}

func (ZoneDTO) TableName() string {
	return "delivery_zones"
}

// ZoneAssignmentDTO links a courier to a zone. Deactivated assignments are
// kept; reassigning flips IsActive back on and keeps CreatedAt, so the
// courier's place in the tie-break order survives.
type ZoneAssignmentDTO struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_zone_assignment_user_zone"`
	User      *directoryrepo.UserDTO `gorm:"foreignKey:UserID"`
	ZoneID    uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_zone_assignment_user_zone;index"`
	Zone      *ZoneDTO               `gorm:"foreignKey:ZoneID"`
	IsActive  bool                   `gorm:"not null"`
	CreatedAt time.Time              `gorm:"not null"`
}

func (ZoneAssignmentDTO) TableName() string {
	return "delivery_zone_assignments"
}

// zoneRow is a zone joined with its branch location.
type zoneRow struct {
	ID                    uuid.UUID
	BranchID              uuid.UUID
	Name                  string
	IsActive              bool
	MaxDeliveryDistanceKm float64
	BranchLat             *float64
	BranchLng             *float64
}

func toDomain(row zoneRow) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(row.BranchID[:])
	if err != nil {
		return nil, err
	}
	return zone.NewZone(
		id,
		branchID,
		row.Name,
		row.IsActive,
		row.MaxDeliveryDistanceKm,
		directoryrepo.Location(row.BranchLat, row.BranchLng),
	)
}
