package services_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCourier(t *testing.T, name string, load int) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, load)
	require.NoError(t, err)
	return c
}

func TestCourierSelector_SelectLeastLoaded(t *testing.T) {
	selector := services.NewCourierSelector()

	t.Run("should pick workload 0 over workload 2", func(t *testing.T) {
		busy := mustCourier(t, "Busy", 2)
		idle := mustCourier(t, "Idle", 0)

		selected, err := selector.SelectLeastLoaded([]*courier.Courier{busy, idle})

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(idle))
	})

	t.Run("ties go to the first candidate", func(t *testing.T) {
		first := mustCourier(t, "First", 1)
		second := mustCourier(t, "Second", 1)
		third := mustCourier(t, "Third", 3)

		selected, err := selector.SelectLeastLoaded([]*courier.Courier{third, first, second})

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(first))
	})

	t.Run("empty candidate list", func(t *testing.T) {
		_, err := selector.SelectLeastLoaded(nil)

		require.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("unconstructed candidate is an error", func(t *testing.T) {
		_, err := selector.SelectLeastLoaded([]*courier.Courier{mustCourier(t, "Ok", 0), {}})

		require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)
	})
}
