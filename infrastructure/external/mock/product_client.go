package mock

import (
	"context"
	"fmt"

	"ordersvc/domain/external"
	"ordersvc/domain/shared"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

// ProductClient simulates the product service.
//
// Fixtures:
//
//	9999 - product not found
//	8888 - OUT_OF_STOCK product, price 0.00
//	7777 - only 2 units available in stock
//	any other id - AVAILABLE "Mock Product <id>" at 99.99, 1000 in stock
type ProductClient struct{}

// NewProductClient creates the mock product client.
func NewProductClient() *ProductClient {
	return &ProductClient{}
}

// GetProduct implements external.ProductClient.
func (c *ProductClient) GetProduct(ctx context.Context, productID int64) (external.Product, error) {
	logger.Info("[MOCK] Getting product", zap.Int64("product_id", productID))

	switch productID {
	case 9999:
		logger.Warn("[MOCK] Product not found", zap.Int64("product_id", productID))
		return external.Product{}, fmt.Errorf("product %d: %w", productID, external.ErrNotFound)
	case 8888:
		logger.Warn("[MOCK] Product is OUT_OF_STOCK", zap.Int64("product_id", productID))
		return external.Product{
			ID:     productID,
			Name:   "Out of Stock Product",
			Price:  shared.ZeroMoney(),
			Status: "OUT_OF_STOCK",
		}, nil
	}

	price, _ := shared.NewMoneyFromString("99.99")
	return external.Product{
		ID:     productID,
		Name:   fmt.Sprintf("Mock Product %d", productID),
		Price:  price,
		Status: external.ProductStatusAvailable,
	}, nil
}

// GetStock implements external.ProductClient.
func (c *ProductClient) GetStock(ctx context.Context, productID int64) (external.ProductStock, error) {
	logger.Info("[MOCK] Getting product stock", zap.Int64("product_id", productID))

	if productID == 7777 {
		logger.Warn("[MOCK] Low stock", zap.Int64("product_id", productID))
		return external.ProductStock{
			ProductID: productID,
			Quantity:  10,
			Reserved:  8,
			Available: 2,
		}, nil
	}

	return external.ProductStock{
		ProductID: productID,
		Quantity:  1000,
		Reserved:  0,
		Available: 1000,
	}, nil
}

var _ external.ProductClient = (*ProductClient)(nil)
