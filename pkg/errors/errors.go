// Package errors defines the application error model: stable error codes,
// the AppError carrier, and the mapping from domain errors to codes. HTTP
// status mapping lives here so the API layer stays a thin translation.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"ordersvc/domain/order"
	"ordersvc/domain/shared"
)

// ErrorCode is a stable, machine-readable failure class exposed to clients.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Order business codes
	CodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	CodeMemberNotFound     ErrorCode = "MEMBER_NOT_FOUND"
	CodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	CodePaymentNotFound    ErrorCode = "PAYMENT_NOT_FOUND"
	CodeMemberValidation   ErrorCode = "MEMBER_VALIDATION"
	CodeProductValidation  ErrorCode = "PRODUCT_VALIDATION"
	CodeInsufficientStock  ErrorCode = "INSUFFICIENT_STOCK"
	CodeInvalidOrderStatus ErrorCode = "INVALID_ORDER_STATUS"
	CodePaymentFailed      ErrorCode = "PAYMENT_FAILED"
	CodeServiceUnavailable ErrorCode = "EXTERNAL_SERVICE_UNAVAILABLE"
)

// AppError pairs an ErrorCode with a client-facing message. The wrapped
// cause is logged but never serialized.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the error code to an HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation,
		CodeMemberValidation, CodeProductValidation,
		CodeInsufficientStock, CodeInvalidOrderStatus:
		return http.StatusBadRequest
	case CodeNotFound, CodeOrderNotFound, CodeMemberNotFound,
		CodeProductNotFound, CodePaymentNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodePaymentFailed:
		return http.StatusUnprocessableEntity
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError keeping the cause for logging.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is checks whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts any error to an AppError, wrapping unknown errors
// as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// domainCodes orders the sentinel checks. Specific classes come before
// the generic shared sentinels so a wrapped validation error keeps its
// business code.
var domainCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrMemberNotFound, CodeMemberNotFound},
	{order.ErrProductNotFound, CodeProductNotFound},
	{order.ErrPaymentNotFound, CodePaymentNotFound},
	{order.ErrMemberValidation, CodeMemberValidation},
	{order.ErrProductValidation, CodeProductValidation},
	{order.ErrInsufficientStock, CodeInsufficientStock},
	{order.ErrInvalidOrderStatus, CodeInvalidOrderStatus},
	{order.ErrPaymentFailed, CodePaymentFailed},
	{order.ErrServiceUnavailable, CodeServiceUnavailable},
	{order.ErrInvalidQuantity, CodeValidation},
	{order.ErrEmptyOrderItems, CodeValidation},
	{order.ErrItemNotFound, CodeValidation},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrConflict, CodeConflict},
}

// MapDomainError translates a domain error to an AppError by sentinel
// identity. The failure class chosen in the domain layer survives to the
// response unchanged; only unknown errors collapse to internal.
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range domainCodes {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, err.Error())
		}
	}
	return Wrap(err, CodeInternal, "internal server error")
}
