package order

import (
	"errors"
	"fmt"

	"ordersvc/domain/shared"
)

// ============================================================================
// Sentinel Errors
// The application layer classifies failures with errors.Is() against these;
// the API layer maps each class to one HTTP status.
// ============================================================================

var (
	// ErrOrderNotFound order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrMemberNotFound member does not exist in the member service
	ErrMemberNotFound = errors.New("member not found")

	// ErrProductNotFound product does not exist in the product service
	ErrProductNotFound = errors.New("product not found")

	// ErrPaymentNotFound payment record does not exist
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrMemberValidation member exists but cannot order (inactive, etc.)
	ErrMemberValidation = errors.New("member validation failed")

	// ErrProductValidation product exists but cannot be ordered
	ErrProductValidation = errors.New("product validation failed")

	// ErrInsufficientStock requested quantity exceeds available stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidOrderStatus the requested status transition is not allowed
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// ErrPaymentFailed the payment provider rejected the charge
	ErrPaymentFailed = errors.New("payment failed")

	// ErrServiceUnavailable a downstream service could not be reached
	ErrServiceUnavailable = errors.New("external service unavailable")

	// ErrInvalidQuantity item quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrEmptyOrderItems an order must contain at least one item
	ErrEmptyOrderItems = errors.New("order must contain at least one item")

	// ErrItemNotFound the referenced item is not part of this order
	ErrItemNotFound = errors.New("order item not found")
)

// ============================================================================
// orderDomainError
// Wraps a sentinel with context and the creation-point stack
// ============================================================================

type orderDomainError struct {
	err     error
	message string
	stack   []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.err
}

func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}

var _ shared.Stacker = (*orderDomainError)(nil)

// ============================================================================
// Constructors
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error for the given id.
func NewOrderNotFoundError(orderID int64) error {
	return &orderDomainError{
		err:     ErrOrderNotFound,
		message: fmt.Sprintf("order not found: %d", orderID),
		stack:   shared.CaptureStack(3),
	}
}

// NewMemberNotFoundError creates a member-not-found error for the given id.
func NewMemberNotFoundError(memberID int64) error {
	return &orderDomainError{
		err:     ErrMemberNotFound,
		message: fmt.Sprintf("member not found: %d", memberID),
		stack:   shared.CaptureStack(3),
	}
}

// NewProductNotFoundError creates a product-not-found error for the given id.
func NewProductNotFoundError(productID int64) error {
	return &orderDomainError{
		err:     ErrProductNotFound,
		message: fmt.Sprintf("product not found: %d", productID),
		stack:   shared.CaptureStack(3),
	}
}

// NewPaymentNotFoundError creates a payment-not-found error for the given id.
func NewPaymentNotFoundError(paymentID int64) error {
	return &orderDomainError{
		err:     ErrPaymentNotFound,
		message: fmt.Sprintf("payment not found: %d", paymentID),
		stack:   shared.CaptureStack(3),
	}
}

// NewMemberValidationError creates a member-cannot-order error.
func NewMemberValidationError(memberID int64, reason string) error {
	return &orderDomainError{
		err:     ErrMemberValidation,
		message: fmt.Sprintf("member %d cannot place orders: %s", memberID, reason),
		stack:   shared.CaptureStack(3),
	}
}

// NewProductValidationError creates a product-cannot-be-ordered error.
func NewProductValidationError(productID int64, reason string) error {
	return &orderDomainError{
		err:     ErrProductValidation,
		message: fmt.Sprintf("product %d cannot be ordered: %s", productID, reason),
		stack:   shared.CaptureStack(3),
	}
}

// NewInsufficientStockError creates a stock-shortage error carrying both the
// requested and the available quantity.
func NewInsufficientStockError(productID int64, requested, available int) error {
	return &orderDomainError{
		err:     ErrInsufficientStock,
		message: fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", productID, requested, available),
		stack:   shared.CaptureStack(3),
	}
}

// NewInvalidOrderStatusError creates a rejected-transition error.
func NewInvalidOrderStatusError(current, target string) error {
	return &orderDomainError{
		err:     ErrInvalidOrderStatus,
		message: fmt.Sprintf("cannot transition order from %s to %s", current, target),
		stack:   shared.CaptureStack(3),
	}
}

// NewItemUpdateNotAllowedError rejects an item replacement attempted once
// the order has left PENDING.
func NewItemUpdateNotAllowedError(current string) error {
	return &orderDomainError{
		err:     ErrInvalidOrderStatus,
		message: fmt.Sprintf("cannot update items while order is %s", current),
		stack:   shared.CaptureStack(3),
	}
}

// NewPaymentFailedError creates a payment-rejected error.
func NewPaymentFailedError(orderID int64, reason string) error {
	return &orderDomainError{
		err:     ErrPaymentFailed,
		message: fmt.Sprintf("payment failed for order %d: %s", orderID, reason),
		stack:   shared.CaptureStack(3),
	}
}

// NewServiceUnavailableError creates a downstream-unreachable error.
func NewServiceUnavailableError(service string, cause error) error {
	msg := fmt.Sprintf("%s service unavailable", service)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &orderDomainError{
		err:     ErrServiceUnavailable,
		message: msg,
		stack:   shared.CaptureStack(3),
	}
}
