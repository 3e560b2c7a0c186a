package rest

import (
	"context"
	"fmt"
	"time"

	"ordersvc/domain/external"
	"ordersvc/domain/shared"

	"github.com/shopspring/decimal"
)

// PaymentClient calls the payment service over HTTP.
type PaymentClient struct {
	http httpClient
}

// NewPaymentClient creates a REST payment client.
func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{http: newHTTPClient(baseURL, "payment", timeout)}
}

type paymentRequestDTO struct {
	OrderID       int64           `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type paymentDTO struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (dto paymentDTO) toDomain() external.Payment {
	return external.Payment{
		ID:            dto.ID,
		OrderID:       dto.OrderID,
		Amount:        shared.NewMoney(dto.Amount),
		Status:        dto.Status,
		TransactionID: dto.TransactionID,
		CreatedAt:     dto.CreatedAt,
	}
}

// ProcessPayment implements external.PaymentClient.
func (c *PaymentClient) ProcessPayment(ctx context.Context, req external.PaymentRequest) (external.Payment, error) {
	body := paymentRequestDTO{
		OrderID:       req.OrderID,
		Amount:        req.Amount.Amount(),
		PaymentMethod: req.Method,
	}
	var dto paymentDTO
	if err := c.http.postJSON(ctx, "/api/payments", body, &dto); err != nil {
		return external.Payment{}, err
	}
	return dto.toDomain(), nil
}

// GetPayment implements external.PaymentClient.
func (c *PaymentClient) GetPayment(ctx context.Context, paymentID int64) (external.Payment, error) {
	var dto paymentDTO
	if err := c.http.getJSON(ctx, fmt.Sprintf("/api/payments/%d", paymentID), &dto); err != nil {
		return external.Payment{}, err
	}
	return dto.toDomain(), nil
}

var _ external.PaymentClient = (*PaymentClient)(nil)
