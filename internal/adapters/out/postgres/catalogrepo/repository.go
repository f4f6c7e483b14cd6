package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ ports.CatalogRepository = (*GormCatalogRepository)(nil)

// GormCatalogRepository implements CatalogRepository using GORM. Every
// lookup is a single primary-key read; missing rows surface as
// errs.ErrObjectNotFound so pricing can tell them from outages.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) Product(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return catalog.Product{}, notFound(err, "product", id.String())
	}
	return productToDomain(dto)
}

func (r *GormCatalogRepository) CategoryPrice(
	ctx context.Context,
	categoryID, sizeID kernel.UUID,
) (decimal.Decimal, error) {
	var dto CategoryPriceDTO
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND size_id = ?", categoryID.Bytes(), sizeID.Bytes()).
		First(&dto).Error
	if err != nil {
		return decimal.Decimal{}, notFound(err, "category price", fmt.Sprintf("%s/%s", categoryID, sizeID))
	}
	return dto.Price, nil
}

func (r *GormCatalogRepository) Addon(ctx context.Context, id kernel.UUID) (catalog.Addon, error) {
	var dto AddonDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return catalog.Addon{}, notFound(err, "addon", id.String())
	}
	return addonToDomain(dto)
}

func (r *GormCatalogRepository) AddonPrice(ctx context.Context, addonID, sizeID kernel.UUID) (decimal.Decimal, error) {
	var dto AddonPriceDTO
	err := r.db.WithContext(ctx).
		Where("addon_id = ? AND size_id = ?", addonID.Bytes(), sizeID.Bytes()).
		First(&dto).Error
	if err != nil {
		return decimal.Decimal{}, notFound(err, "addon price", fmt.Sprintf("%s/%s", addonID, sizeID))
	}
	return dto.Price, nil
}

func notFound(err error, param, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}
	return err
}
