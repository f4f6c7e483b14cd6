package order_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should normalize case and separators", func(t *testing.T) {
		for in, want := range map[string]order.Status{
			"PAID":         order.Paid,
			" preparing ":  order.Preparing,
			"en route":     order.EnRoute,
			"En-Route":     order.EnRoute,
			"EN_ROUTE":     order.EnRoute,
			"delivered":    order.Delivered,
			"Cancelled\t":  order.Cancelled,
			"dispatched  ": order.Dispatched,
		} {
			got, err := order.ParseStatus(in)

			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("should reject legacy and unknown literals", func(t *testing.T) {
		for _, in := range []string{"", "PAGADO", "EN CAMINO", "ENROUTE", "Created", "unknown"} {
			_, err := order.ParseStatus(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "EN_ROUTE", order.EnRoute.String())
	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
}

func TestStatus_Transition_Restaurant(t *testing.T) {
	t.Run("should allow the kitchen pipeline", func(t *testing.T) {
		next, err := order.Paid.Transition(actor.Restaurant, order.Preparing)
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, next)

		next, err = order.Preparing.Transition(actor.Restaurant, order.Dispatched)
		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, next)
	})

	t.Run("should allow cancellation from any non-terminal status", func(t *testing.T) {
		for _, from := range []order.Status{order.Paid, order.Preparing, order.Dispatched, order.EnRoute} {
			next, err := from.Transition(actor.Restaurant, order.Cancelled)

			require.NoError(t, err, from.String())
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("should reject courier transitions and terminal exits", func(t *testing.T) {
		cases := []struct{ from, to order.Status }{
			{order.Paid, order.EnRoute},
			{order.Paid, order.Dispatched},
			{order.Dispatched, order.EnRoute},
			{order.Delivered, order.Preparing},
			{order.Delivered, order.Cancelled},
			{order.Cancelled, order.Cancelled},
		}
		for _, tc := range cases {
			_, err := tc.from.Transition(actor.Restaurant, tc.to)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "%s->%s", tc.from, tc.to)
		}
	})

	t.Run("error names current, requested and allowed statuses", func(t *testing.T) {
		_, err := order.Paid.Transition(actor.Restaurant, order.EnRoute)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "from PAID to EN_ROUTE")
		assert.Contains(t, err.Error(), "allowed: [PREPARING, CANCELLED]")
	})
}

func TestStatus_Transition_Delivery(t *testing.T) {
	next, err := order.Dispatched.Transition(actor.Delivery, order.EnRoute)
	require.NoError(t, err)
	assert.Equal(t, order.EnRoute, next)

	next, err = order.EnRoute.Transition(actor.Delivery, order.Delivered)
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, next)

	for _, tc := range []struct{ from, to order.Status }{
		{order.Dispatched, order.Delivered},
		{order.Preparing, order.Dispatched},
		{order.EnRoute, order.Cancelled},
		{order.Paid, order.Preparing},
	} {
		_, err = tc.from.Transition(actor.Delivery, tc.to)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, "%s->%s", tc.from, tc.to)
	}
}

func TestStatus_Transition_RolesWithoutTransitions(t *testing.T) {
	for _, role := range []actor.Role{actor.Client, actor.Admin} {
		_, err := order.Paid.Transition(role, order.Preparing)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "allowed: []")
	}
}

func TestStatus_Transition_InvalidTarget(t *testing.T) {
	_, err := order.Paid.Transition(actor.Restaurant, order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TextMarshaling(t *testing.T) {
	text, err := order.Dispatched.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "DISPATCHED", string(text))

	_, err = order.Unknown.MarshalText()
	require.Error(t, err)

	var s order.Status
	require.NoError(t, s.UnmarshalText([]byte("en route")))
	assert.Equal(t, order.EnRoute, s)
}

func TestStatus_IsActiveDelivery(t *testing.T) {
	assert.True(t, order.Dispatched.IsActiveDelivery())
	assert.True(t, order.EnRoute.IsActiveDelivery())
	assert.False(t, order.Preparing.IsActiveDelivery())
	assert.False(t, order.Delivered.IsActiveDelivery())
}
