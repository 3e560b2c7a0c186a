/*
Package external defines the ports to the member, product and payment
services. The domain depends only on these interfaces; infrastructure
provides mock, REST and resilience-wrapped implementations.

Implementations report failures through the three sentinels below. The
application layer knows which call it made, so it maps ErrNotFound from the
member client to a member-not-found domain error, from the product client
to product-not-found, and so on.
*/
package external

import (
	"context"
	"errors"
	"time"

	"ordersvc/domain/shared"
)

var (
	// ErrNotFound the remote service has no such resource
	ErrNotFound = errors.New("external: not found")

	// ErrRejected the remote service refused the operation (business rule)
	ErrRejected = errors.New("external: rejected")

	// ErrUnavailable the remote service could not be reached or timed out.
	// This is the only retryable failure class.
	ErrUnavailable = errors.New("external: unavailable")
)

// ============================================================================
// Member service
// ============================================================================

// Member is the member service's view of a customer.
type Member struct {
	ID     int64
	Name   string
	Email  string
	Status string
	Grade  string
}

// MemberStatusActive is the only status allowed to place orders.
const MemberStatusActive = "ACTIVE"

// CanOrder reports whether the member may place orders.
func (m Member) CanOrder() bool {
	return m.Status == MemberStatusActive
}

// MemberClient fetches member data from the member service.
type MemberClient interface {
	GetMember(ctx context.Context, memberID int64) (Member, error)
}

// ============================================================================
// Product service
// ============================================================================

// Product is the product service's view of a catalog entry.
type Product struct {
	ID     int64
	Name   string
	Price  shared.Money
	Status string
}

// ProductStatusAvailable is the only status that can be ordered.
const ProductStatusAvailable = "AVAILABLE"

// CanBeOrdered reports whether the product may appear on an order.
func (p Product) CanBeOrdered() bool {
	return p.Status == ProductStatusAvailable
}

// ProductStock is the stock position of one product.
type ProductStock struct {
	ProductID int64
	Quantity  int
	Reserved  int
	Available int
}

// HasAvailable reports whether the requested quantity can be served.
func (s ProductStock) HasAvailable(quantity int) bool {
	return s.Available >= quantity
}

// ProductClient fetches product and stock data from the product service.
type ProductClient interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
	GetStock(ctx context.Context, productID int64) (ProductStock, error)
}

// ============================================================================
// Payment service
// ============================================================================

// Payment is a completed charge recorded by the payment service.
type Payment struct {
	ID            int64
	OrderID       int64
	Amount        shared.Money
	Status        string
	TransactionID string
	CreatedAt     time.Time
}

// PaymentRequest asks the payment service to charge an order.
type PaymentRequest struct {
	OrderID int64
	Amount  shared.Money
	Method  string
}

// PaymentClient charges orders and looks up past payments.
type PaymentClient interface {
	// ProcessPayment charges the order. A business rejection (declined card,
	// limit exceeded) is reported as ErrRejected; transport failures as
	// ErrUnavailable.
	ProcessPayment(ctx context.Context, req PaymentRequest) (Payment, error)

	// GetPayment looks up a payment by id.
	GetPayment(ctx context.Context, paymentID int64) (Payment, error)
}
