package ports

import "pizzeria/internal/core/domain/services"

// CatalogRepository is the read-only catalog used to price orders.
type CatalogRepository interface {
	services.PriceBook
}
