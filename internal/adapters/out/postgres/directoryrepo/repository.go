package directoryrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.Directory = (*GormDirectory)(nil)

// GormDirectory implements ports.Directory using GORM.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// Client returns the contact details of a user.
func (r *GormDirectory) Client(ctx context.Context, id kernel.UUID) (ports.ClientSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.ClientSnapshot{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ClientSnapshot{}, errs.NewObjectNotFoundError("client", id.String())
		}
		return ports.ClientSnapshot{}, err
	}

	return clientToSnapshot(dto)
}

// Address returns a delivery address with its location when known.
func (r *GormDirectory) Address(ctx context.Context, id kernel.UUID) (ports.AddressSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.AddressSnapshot{}, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AddressSnapshot{}, errs.NewObjectNotFoundError("address", id.String())
		}
		return ports.AddressSnapshot{}, err
	}

	return addressToSnapshot(dto)
}
