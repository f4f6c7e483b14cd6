// Package directoryrepo reads the people and places an order refers to:
// users with their roles, branches and client addresses. These tables are
// owned by account management; this service only reads them.
package directoryrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"

	"github.com/google/uuid"
)

// BranchDTO is a restaurant branch. Lat and Lng locate the kitchen and act
// as the center of the branch's delivery zones.
type BranchDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Address string    `gorm:"type:varchar(255);not null"`
	Phone   *string   `gorm:"type:varchar(50)"`
	Lat     *float64
	Lng     *float64
}

func (BranchDTO) TableName() string {
	return "branches"
}

// UserDTO is any account: client, staff member, courier or admin. BranchID
// is set for restaurant staff.
type UserDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name      string        `gorm:"type:varchar(255);not null"`
	Lastname  string        `gorm:"type:varchar(255);not null"`
	Email     string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone     *string       `gorm:"type:varchar(50)"`
	BranchID  *uuid.UUID    `gorm:"type:uuid;index"`
	Branch    *BranchDTO    `gorm:"foreignKey:BranchID"`
	Roles     []UserRoleDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

type UserRoleDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"type:varchar(20);primaryKey"`
}

func (UserRoleDTO) TableName() string {
	return "user_roles"
}

type AddressDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	User         *UserDTO  `gorm:"foreignKey:UserID"`
	Address      string    `gorm:"type:varchar(255);not null"`
	Neighborhood string    `gorm:"type:varchar(255);not null"`
	Alias        *string   `gorm:"type:varchar(100)"`
	Lat          *float64
	Lng          *float64
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func clientToSnapshot(dto UserDTO) (ports.ClientSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ClientSnapshot{}, err
	}
	return ports.ClientSnapshot{
		ID:       id,
		Name:     dto.Name,
		LastName: dto.Lastname,
		Email:    dto.Email,
		Phone:    deref(dto.Phone),
	}, nil
}

// addressToSnapshot drops coordinates that are missing or out of range;
// such addresses are treated as having no known location.
func addressToSnapshot(dto AddressDTO) (ports.AddressSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.AddressSnapshot{}, err
	}
	snapshot := ports.AddressSnapshot{
		ID:           id,
		Address:      dto.Address,
		Neighborhood: dto.Neighborhood,
		Alias:        deref(dto.Alias),
	}
	snapshot.Location = Location(dto.Lat, dto.Lng)
	return snapshot, nil
}

// Location returns nil unless both coordinates are present and valid. Zone
// centers read from the branches table follow the same rule.
func Location(lat, lng *float64) *kernel.GeoPoint {
	if lat == nil || lng == nil {
		return nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil
	}
	return &point
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
