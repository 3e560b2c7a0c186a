/*
Package order (application layer) orchestrates the order lifecycle.

The create pipeline is strictly ordered and fail-fast: the member check
runs before any product check, each product's availability check before
its stock check, and all item checks before payment is attempted. When a
request has several problems only the first one in this order is reported.

Failures from the external clients arrive as generic sentinels; this layer
knows which call it made and translates them into the specific domain
error for that step.
*/
package order

import (
	"context"
	"errors"

	"ordersvc/domain/external"
	"ordersvc/domain/order"
	"ordersvc/domain/shared"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

// Service coordinates order creation, retrieval, listing and updates.
type Service struct {
	orders   order.Repository
	members  external.MemberClient
	products external.ProductClient
	payments external.PaymentClient
}

// NewService creates the order application service.
func NewService(
	orders order.Repository,
	members external.MemberClient,
	products external.ProductClient,
	payments external.PaymentClient,
) *Service {
	return &Service{
		orders:   orders,
		members:  members,
		products: products,
		payments: payments,
	}
}

// CreateOrder runs the create pipeline:
//
//  1. validate the member
//  2. validate, price and stock-check each item in request order
//  3. persist the order as PENDING (first write)
//  4. charge payment
//  5. persist again as CONFIRMED (second write)
//
// A payment failure after step 3 leaves the PENDING row in place; there is
// no rollback and no automatic cancellation.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	logger.Info("Creating order", zap.Int64("member_id", req.MemberID))

	member, err := s.members.GetMember(ctx, req.MemberID)
	if err != nil {
		return nil, s.mapMemberError(req.MemberID, err)
	}
	if !member.CanOrder() {
		logger.Warn("Member is not active",
			zap.Int64("member_id", req.MemberID),
			zap.String("status", member.Status),
		)
		return nil, order.NewMemberValidationError(req.MemberID, "status="+member.Status)
	}

	method, _ := order.ParsePaymentMethod(req.PaymentMethod)
	o, err := order.NewOrder(req.MemberID, member.Name, method)
	if err != nil {
		return nil, err
	}

	if err := s.buildItems(ctx, o, req.Items); err != nil {
		return nil, err
	}

	// First write: the order exists durably in PENDING state from here on
	o, err = s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}
	logger.Info("Order saved with PENDING status",
		zap.Int64("order_id", o.ID()),
		zap.String("total_amount", o.TotalAmount().String()),
	)

	payment, err := s.payments.ProcessPayment(ctx, external.PaymentRequest{
		OrderID: o.ID(),
		Amount:  o.TotalAmount(),
		Method:  string(o.PaymentMethod()),
	})
	if err != nil {
		logger.Error("Payment failed, order remains PENDING",
			zap.Int64("order_id", o.ID()),
			zap.Error(err),
		)
		return nil, s.mapPaymentError(o.ID(), err)
	}

	if err := o.ApplyPayment(payment.ID, payment.TransactionID); err != nil {
		return nil, err
	}
	o, err = s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.Int64("order_id", o.ID()),
		zap.Int64("payment_id", payment.ID),
		zap.String("transaction_id", payment.TransactionID),
	)
	return toOrderResponse(o), nil
}

// buildItems validates and appends each requested item in order: product
// availability first, then stock, then construction with the current name
// and price.
func (s *Service) buildItems(ctx context.Context, o *order.Order, items []OrderItemRequest) error {
	if len(items) == 0 {
		return order.ErrEmptyOrderItems
	}

	for _, itemReq := range items {
		product, err := s.products.GetProduct(ctx, itemReq.ProductID)
		if err != nil {
			return s.mapProductError(itemReq.ProductID, err)
		}
		if !product.CanBeOrdered() {
			logger.Warn("Product is not available",
				zap.Int64("product_id", itemReq.ProductID),
				zap.String("status", product.Status),
			)
			return order.NewProductValidationError(itemReq.ProductID, "status="+product.Status)
		}

		stock, err := s.products.GetStock(ctx, itemReq.ProductID)
		if err != nil {
			return s.mapProductError(itemReq.ProductID, err)
		}
		if !stock.HasAvailable(itemReq.Quantity) {
			logger.Warn("Insufficient stock",
				zap.Int64("product_id", itemReq.ProductID),
				zap.Int("requested", itemReq.Quantity),
				zap.Int("available", stock.Available),
			)
			return order.NewInsufficientStockError(itemReq.ProductID, itemReq.Quantity, stock.Available)
		}

		item, err := order.NewOrderItem(product.ID, product.Name, itemReq.Quantity, product.Price)
		if err != nil {
			return err
		}
		o.AddItem(item)
	}
	return nil
}

// GetOrder is a pure read.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*OrderResponse, error) {
	o, err := s.orders.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// ListOrders delegates to the store's filtered page query.
func (s *Service) ListOrders(ctx context.Context, query ListOrdersQuery) (*OrderListResponse, error) {
	filter := order.Filter{MemberID: query.MemberID}
	if query.Status != nil {
		status, ok := order.ParseStatus(*query.Status)
		if !ok {
			return nil, shared.NewValidationError("order", "status", "unknown status: "+*query.Status)
		}
		filter.Status = &status
	}

	size := query.Size
	if size <= 0 {
		size = 20
	}
	req := shared.PageRequest{
		Number:     query.Page,
		Size:       size,
		SortBy:     query.SortBy,
		Descending: query.Descending,
	}

	page, err := s.orders.FindPage(ctx, filter, req)
	if err != nil {
		return nil, err
	}
	return toListResponse(page), nil
}

// UpdateOrder applies up to three independent intents in fixed order:
// status transition, item replacement, payment method. The order is
// persisted once afterwards even if every intent was absent.
func (s *Service) UpdateOrder(ctx context.Context, orderID int64, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		target, ok := order.ParseStatus(*req.Status)
		if !ok {
			return nil, shared.NewValidationError("order", "status", "unknown status: "+*req.Status)
		}
		if err := o.TransitionTo(target); err != nil {
			return nil, err
		}
	}

	if len(req.Items) > 0 {
		if !o.CanUpdateItems() {
			return nil, order.NewItemUpdateNotAllowedError(string(o.Status()))
		}
		o.ClearItems()
		if err := s.buildItems(ctx, o, req.Items); err != nil {
			return nil, err
		}
	}

	if req.PaymentMethod != nil {
		method, ok := order.ParsePaymentMethod(*req.PaymentMethod)
		if !ok {
			return nil, shared.NewValidationError("order", "payment_method", "unknown payment method: "+*req.PaymentMethod)
		}
		if err := o.SetPaymentMethod(method); err != nil {
			return nil, err
		}
	}

	o, err = s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	logger.Info("Order updated", zap.Int64("order_id", o.ID()), zap.String("status", string(o.Status())))
	return toOrderResponse(o), nil
}

// GetStats counts orders by status, plus one member's total when asked.
func (s *Service) GetStats(ctx context.Context, memberID *int64) (*OrderStatsResponse, error) {
	stats := &OrderStatsResponse{}

	counts := []struct {
		status order.Status
		target *int64
	}{
		{order.StatusPending, &stats.Pending},
		{order.StatusConfirmed, &stats.Confirmed},
		{order.StatusCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		count, err := s.orders.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
	}
	stats.Total = stats.Pending + stats.Confirmed + stats.Cancelled

	if memberID != nil {
		count, err := s.orders.CountByMember(ctx, *memberID)
		if err != nil {
			return nil, err
		}
		stats.MemberOrders = &count
	}
	return stats, nil
}

// GetPayment looks a payment up through the payment service.
func (s *Service) GetPayment(ctx context.Context, paymentID int64) (*PaymentResponse, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, external.ErrNotFound) {
			return nil, order.NewPaymentNotFoundError(paymentID)
		}
		if errors.Is(err, external.ErrUnavailable) {
			return nil, order.NewServiceUnavailableError("payment", err)
		}
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ============================================================================
// External failure translation
// ============================================================================

func (s *Service) mapMemberError(memberID int64, err error) error {
	switch {
	case errors.Is(err, external.ErrNotFound):
		return order.NewMemberNotFoundError(memberID)
	case errors.Is(err, external.ErrUnavailable):
		return order.NewServiceUnavailableError("member", err)
	default:
		return order.NewServiceUnavailableError("member", err)
	}
}

func (s *Service) mapProductError(productID int64, err error) error {
	switch {
	case errors.Is(err, external.ErrNotFound):
		return order.NewProductNotFoundError(productID)
	case errors.Is(err, external.ErrUnavailable):
		return order.NewServiceUnavailableError("product", err)
	default:
		return order.NewServiceUnavailableError("product", err)
	}
}

// mapPaymentError distinguishes a reachable-but-rejecting payment backend
// (PaymentFailed) from an unreachable one (ServiceUnavailable). Anything
// the core cannot classify during payment counts as PaymentFailed.
func (s *Service) mapPaymentError(orderID int64, err error) error {
	switch {
	case errors.Is(err, external.ErrUnavailable):
		return order.NewServiceUnavailableError("payment", err)
	case errors.Is(err, external.ErrRejected):
		return order.NewPaymentFailedError(orderID, err.Error())
	default:
		return order.NewPaymentFailedError(orderID, err.Error())
	}
}
