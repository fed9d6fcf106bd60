package errs_test

import (
	"errors"
	"testing"

	"nexaci/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("accountId", "123")

		assert.Equal(t, "accountId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("accountId", "123", cause)

		assert.Equal(t, "accountId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: accountId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	t.Run("NewObjectAlreadyExistsError", func(t *testing.T) {
		err := errs.NewObjectAlreadyExistsError("reference", "CLS-2026-000042")

		assert.Equal(t, "reference", err.ParamName)
		assert.Equal(t, "CLS-2026-000042", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object already exists: CLS-2026-000042", err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})

	t.Run("NewObjectAlreadyExistsErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicated key not allowed")
		err := errs.NewObjectAlreadyExistsErrorWithCause("phone", "+2250700000001", cause)

		assert.Equal(t, "phone", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object already exists: param is: phone, ID is: +2250700000001 (cause: duplicated key not allowed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectAlreadyExists, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("attempts", 7, 0, 5)

		assert.Equal(t, "attempts", err.ParamName)
		assert.Equal(t, 7, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 5, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 7 is attempts, min value is 0, max value is 5", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("actorId")

		assert.Equal(t, "actorId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: actorId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("actorId", cause)

		assert.Equal(t, "actorId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: actorId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("accountId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewObjectAlreadyExistsError("reference", "MND-2026-000001"), errs.ErrObjectAlreadyExists)
		require.ErrorIs(t, errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("attempts", 7, 0, 5), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("actorId"), errs.ErrValueIsRequired)
	})
}
