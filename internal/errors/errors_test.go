package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_DefaultCode(t *testing.T) {
	err := NewNotFoundError("Order not found with ID: 42")

	assert.Equal(t, "Order not found with ID: 42", err.Error())
	assert.Equal(t, CodeOrderNotFound, err.Code)
}

func TestNotFoundError_ExplicitCode(t *testing.T) {
	err := NewNotFoundErrorWithCode("customer missing", "CUSTOMER_NOT_FOUND")

	assert.Equal(t, "CUSTOMER_NOT_FOUND", err.Code)
}

func TestIsNotFoundError(t *testing.T) {
	nf, ok := IsNotFoundError(NewNotFoundError("gone"))
	assert.True(t, ok)
	assert.Equal(t, "gone", nf.Message)

	nf, ok = IsNotFoundError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, nf)
}

func TestBadRequestError(t *testing.T) {
	err := NewBadRequestError("You are not authorized to cancel this order", CodeUnauthorizedCancel)

	assert.Equal(t, "You are not authorized to cancel this order", err.Error())
	assert.Equal(t, "UNAUTHORIZED_CANCEL", err.Code)

	br, ok := IsBadRequestError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeUnauthorizedCancel, br.Code)

	_, ok = IsBadRequestError(errors.New("nope"))
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "items", Message: "items must not be empty"},
	)

	assert.Equal(t, "validation failed", err.Error())
	assert.Len(t, err.Details, 1)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "items", ve.Details[0].Field)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("querying orders", cause)

	assert.Contains(t, err.Error(), "querying orders")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
