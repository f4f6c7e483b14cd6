// Package catalogrepo reads the product catalog: products, their categories
// and sizes, addons and the price tables that tie them together. Catalog
// management lives elsewhere, so nothing here writes.
package catalogrepo

import (
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

type SizeDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(100);not null"`
}

func (SizeDTO) TableName() string {
	return "sizes"
}

// ProductDTO is a menu item. A non-null Price makes the product fixed-price;
// otherwise its price comes from the category price table by size.
type ProductDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Category    *CategoryDTO     `gorm:"foreignKey:CategoryID"`
	Name        string           `gorm:"type:varchar(255);not null"`
	Description *string          `gorm:"type:text"`
	Price       *decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsAvailable bool             `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type CategoryPriceDTO struct {
	CategoryID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category   *CategoryDTO    `gorm:"foreignKey:CategoryID"`
	SizeID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Size       *SizeDTO        `gorm:"foreignKey:SizeID"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (CategoryPriceDTO) TableName() string {
	return "category_prices"
}

type AddonDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (AddonDTO) TableName() string {
	return "addons"
}

type AddonPriceDTO struct {
	AddonID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Addon   *AddonDTO       `gorm:"foreignKey:AddonID"`
	SizeID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Size    *SizeDTO        `gorm:"foreignKey:SizeID"`
	Price   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (AddonPriceDTO) TableName() string {
	return "addon_prices"
}

func productToDomain(dto ProductDTO) (catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.NewProduct(id, categoryID, dto.Name, dto.Price, dto.IsAvailable)
}

func addonToDomain(dto AddonDTO) (catalog.Addon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Addon{}, err
	}
	return catalog.NewAddon(id, dto.Name)
}
