package errors

import "fmt"

const (
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
	CodeUnauthorizedCancel  = "UNAUTHORIZED_CANCEL"
	CodeOrderNotCancellable = "ORDER_NOT_CANCELLABLE"
)

type NotFoundError struct {
	Message string
	Code    string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message, Code: CodeOrderNotFound}
}

func NewNotFoundErrorWithCode(message, code string) *NotFoundError {
	return &NotFoundError{Message: message, Code: code}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nf, ok := err.(*NotFoundError); ok {
		return nf, true
	}
	return nil, false
}

// BadRequestError is a business-rule violation. Code is always an
// explicit machine-readable category such as UNAUTHORIZED_CANCEL.
type BadRequestError struct {
	Message string
	Code    string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequestError(message, code string) *BadRequestError {
	return &BadRequestError{Message: message, Code: code}
}

func IsBadRequestError(err error) (*BadRequestError, bool) {
	if br, ok := err.(*BadRequestError); ok {
		return br, true
	}
	return nil, false
}

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
