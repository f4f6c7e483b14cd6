package catalog_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("fixed price is copied", func(t *testing.T) {
		price := decimal.RequireFromString("2.50")

		p, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Soda", &price, true)
		require.NoError(t, err)
		price = decimal.RequireFromString("99")

		require.NotNil(t, p.FixedPrice())
		assert.Equal(t, "2.5", p.FixedPrice().String())
		assert.True(t, p.IsAvailable())
	})

	t.Run("size priced product has no fixed price", func(t *testing.T) {
		p, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Muzzarella", nil, true)

		require.NoError(t, err)
		assert.Nil(t, p.FixedPrice())
	})

	t.Run("negative fixed price is invalid", func(t *testing.T) {
		price := decimal.NewFromInt(-1)

		_, err := catalog.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Soda", &price, true)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero values fail validation", func(t *testing.T) {
		require.ErrorIs(t, catalog.Product{}.Validate(), catalog.ErrProductIsNotConstructed)
		require.ErrorIs(t, catalog.Addon{}.Validate(), catalog.ErrAddonIsNotConstructed)
	})
}
