package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("order is outside the actor branch")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: order is outside the actor branch)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("size is required")
		err := errs.NewValueIsInvalidErrorWithCause("products[0]", cause)

		assert.Equal(t, "value is invalid: products[0] (cause: size is required)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100)

		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("latitude", 91, -90, 90, errors.New("bad coordinates"))

		assert.Equal(t,
			"value is out of range: 91 is latitude, min value is -90, max value is 90 (cause: bad coordinates)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("branch_id")
	assert.Equal(t, "value is required: branch_id", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("branch_id", errors.New("actor has no branch"))
	assert.Equal(t, "value is required: branch_id (cause: actor has no branch)", withCause.Error())
}

func TestAccessDeniedError(t *testing.T) {
	err := errs.NewAccessDeniedError("order", "42")
	assert.Equal(t, "access denied: order 42", err.Error())
	require.ErrorIs(t, err, errs.ErrAccessDenied)

	withCause := errs.NewAccessDeniedErrorWithCause("order", "42", errors.New("not the assigned courier"))
	assert.Equal(t, "access denied: order 42 (cause: not the assigned courier)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "42")
	assert.Equal(t, "conflict: order 42 was modified concurrently", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	cases := map[error]error{
		errs.NewObjectNotFoundError("order", "1"):           errs.ErrObjectNotFound,
		errs.NewValueIsInvalidError("status"):                errs.ErrValueIsInvalid,
		errs.NewValueIsOutOfRangeError("quantity", 0, 1, 9):  errs.ErrValueIsOutOfRange,
		errs.NewValueIsRequiredError("products"):             errs.ErrValueIsRequired,
		errs.NewAccessDeniedError("order", "1"):              errs.ErrAccessDenied,
		errs.NewConflictError("order", "1"):                  errs.ErrConflict,
	}

	for err, sentinel := range cases {
		wrapped := fmt.Errorf("handler: %w", err)
		require.ErrorIs(t, wrapped, sentinel)
		require.ErrorIs(t, errors.Join(errors.New("other"), wrapped), sentinel)
	}
}
