package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"ordersvc/domain/external"
	"ordersvc/domain/shared"
	"ordersvc/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentClient simulates the payment service. Payment ids are assigned
// from an explicit counter starting above 5000 so they never collide with
// order ids in logs or fixtures.
//
// Fixtures:
//
//	order 6666 - payment rejected (insufficient funds)
//	payment 9999 - payment not found on lookup
type PaymentClient struct {
	paymentIDCounter atomic.Int64
}

// NewPaymentClient creates the mock payment client with the counter at
// its initial value of 5000.
func NewPaymentClient() *PaymentClient {
	c := &PaymentClient{}
	c.paymentIDCounter.Store(5000)
	return c
}

// ProcessPayment implements external.PaymentClient.
func (c *PaymentClient) ProcessPayment(ctx context.Context, req external.PaymentRequest) (external.Payment, error) {
	logger.Info("[MOCK] Creating payment",
		zap.Int64("order_id", req.OrderID),
		zap.String("amount", req.Amount.String()),
		zap.String("method", req.Method),
	)

	if req.OrderID == 6666 {
		logger.Warn("[MOCK] Payment FAILED", zap.Int64("order_id", req.OrderID))
		return external.Payment{}, fmt.Errorf("insufficient funds: %w", external.ErrRejected)
	}

	paymentID := c.paymentIDCounter.Add(1)
	transactionID := fmt.Sprintf("TXN-%d-%s",
		time.Now().UnixMilli(),
		strings.ToUpper(uuid.New().String()[:8]),
	)

	payment := external.Payment{
		ID:            paymentID,
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Status:        "COMPLETED",
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}

	logger.Info("[MOCK] Payment created",
		zap.Int64("payment_id", paymentID),
		zap.String("transaction_id", transactionID),
	)
	return payment, nil
}

// GetPayment implements external.PaymentClient.
func (c *PaymentClient) GetPayment(ctx context.Context, paymentID int64) (external.Payment, error) {
	logger.Info("[MOCK] Getting payment", zap.Int64("payment_id", paymentID))

	if paymentID == 9999 {
		logger.Warn("[MOCK] Payment not found", zap.Int64("payment_id", paymentID))
		return external.Payment{}, fmt.Errorf("payment %d: %w", paymentID, external.ErrNotFound)
	}

	amount, _ := shared.NewMoneyFromString("99.99")
	return external.Payment{
		ID:            paymentID,
		OrderID:       1,
		Amount:        amount,
		Status:        "COMPLETED",
		TransactionID: fmt.Sprintf("TXN-MOCK-%d", paymentID),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

var _ external.PaymentClient = (*PaymentClient)(nil)
