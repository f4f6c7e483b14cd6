package postgres

import (
	"fmt"

	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/adapters/out/postgres/directoryrepo"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/postgres/zonerepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes. AutoMigrate orders
// them by their foreign keys, so the order here does not matter.
func Models() []any {
	return []any{
		&directoryrepo.BranchDTO{},
		&directoryrepo.UserDTO{},
		&directoryrepo.UserRoleDTO{},
		&directoryrepo.AddressDTO{},
		&catalogrepo.CategoryDTO{},
		&catalogrepo.SizeDTO{},
		&catalogrepo.ProductDTO{},
		&catalogrepo.CategoryPriceDTO{},
		&catalogrepo.AddonDTO{},
		&catalogrepo.AddonPriceDTO{},
		&zonerepo.ZoneDTO{},
		&zonerepo.ZoneAssignmentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderItemAddonDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Tables lists table names in an order that is safe to truncate or delete
// from, children first.
func Tables() []string {
	return []string{
		"order_item_addons",
		"order_items",
		"orders",
		"delivery_zone_assignments",
		"delivery_zones",
		"addon_prices",
		"addons",
		"category_prices",
		"products",
		"sizes",
		"categories",
		"addresses",
		"user_roles",
		"users",
		"branches",
	}
}
