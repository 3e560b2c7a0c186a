package order

import (
	"ordersvc/domain/external"
	"ordersvc/domain/order"
	"ordersvc/domain/shared"
)

func toOrderResponse(o *order.Order) *OrderResponse {
	domainItems := o.Items()
	items := make([]OrderItemResponse, len(domainItems))
	for i, item := range domainItems {
		items[i] = OrderItemResponse{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			Subtotal:    item.Subtotal().String(),
		}
	}

	return &OrderResponse{
		ID:            o.ID(),
		MemberID:      o.MemberID(),
		MemberName:    o.MemberName(),
		Status:        string(o.Status()),
		Items:         items,
		TotalAmount:   o.TotalAmount().String(),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentID:     o.PaymentID(),
		TransactionID: o.TransactionID(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func toListResponse(page shared.Page[*order.Order]) *OrderListResponse {
	content := make([]OrderResponse, len(page.Content))
	for i, o := range page.Content {
		content[i] = *toOrderResponse(o)
	}
	return &OrderListResponse{
		Content:       content,
		Page:          page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

func toPaymentResponse(p external.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount.String(),
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}
