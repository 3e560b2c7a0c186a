package rest

import (
	"context"
	"fmt"
	"time"

	"ordersvc/domain/external"
	"ordersvc/domain/shared"

	"github.com/shopspring/decimal"
)

// ProductClient calls the product service over HTTP.
type ProductClient struct {
	http httpClient
}

// NewProductClient creates a REST product client.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{http: newHTTPClient(baseURL, "product", timeout)}
}

type productDTO struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status"`
}

type productStockDTO struct {
	ProductID         int64 `json:"productId"`
	Quantity          int   `json:"quantity"`
	ReservedQuantity  int   `json:"reservedQuantity"`
	AvailableQuantity int   `json:"availableQuantity"`
}

// GetProduct implements external.ProductClient.
func (c *ProductClient) GetProduct(ctx context.Context, productID int64) (external.Product, error) {
	var dto productDTO
	if err := c.http.getJSON(ctx, fmt.Sprintf("/api/products/%d", productID), &dto); err != nil {
		return external.Product{}, err
	}
	return external.Product{
		ID:     dto.ID,
		Name:   dto.Name,
		Price:  shared.NewMoney(dto.Price),
		Status: dto.Status,
	}, nil
}

// GetStock implements external.ProductClient.
func (c *ProductClient) GetStock(ctx context.Context, productID int64) (external.ProductStock, error) {
	var dto productStockDTO
	if err := c.http.getJSON(ctx, fmt.Sprintf("/api/products/%d/stock", productID), &dto); err != nil {
		return external.ProductStock{}, err
	}
	return external.ProductStock{
		ProductID: dto.ProductID,
		Quantity:  dto.Quantity,
		Reserved:  dto.ReservedQuantity,
		Available: dto.AvailableQuantity,
	}, nil
}

var _ external.ProductClient = (*ProductClient)(nil)
