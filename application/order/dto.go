package order

import "time"

// CreateOrderRequest is the create-order input. Product names and prices
// are never taken from the client; they come from the product service.
type CreateOrderRequest struct {
	MemberID      int64              `json:"member_id" binding:"required,gt=0"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=CREDIT_CARD DEBIT_CARD BANK_TRANSFER"`
}

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderRequest carries up to three independent update intents.
// Absent fields are no-ops; an empty request just re-saves the order.
type UpdateOrderRequest struct {
	Status        *string            `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	Items         []OrderItemRequest `json:"items" binding:"omitempty,max=100,dive"`
	PaymentMethod *string            `json:"payment_method" binding:"omitempty,oneof=CREDIT_CARD DEBIT_CARD BANK_TRANSFER"`
}

// ListOrdersQuery is the filtered, paginated listing input.
type ListOrdersQuery struct {
	MemberID   *int64
	Status     *string
	Page       int
	Size       int
	SortBy     string
	Descending bool
}

// OrderResponse is the public order projection. Monetary values are
// rendered as fixed two-decimal strings.
type OrderResponse struct {
	ID            int64               `json:"id"`
	MemberID      int64               `json:"member_id"`
	MemberName    string              `json:"member_name"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   string              `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	PaymentID     *int64              `json:"payment_id,omitempty"`
	TransactionID *string             `json:"transaction_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OrderItemResponse is one line item in the projection.
type OrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// OrderListResponse is one page of projections plus paging metadata.
type OrderListResponse struct {
	Content       []OrderResponse `json:"content"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"total_elements"`
	TotalPages    int             `json:"total_pages"`
}

// OrderStatsResponse summarizes order counts. MemberOrders is present
// only when the stats were requested for a specific member.
type OrderStatsResponse struct {
	Pending      int64  `json:"pending"`
	Confirmed    int64  `json:"confirmed"`
	Cancelled    int64  `json:"cancelled"`
	Total        int64  `json:"total"`
	MemberOrders *int64 `json:"member_orders,omitempty"`
}

// PaymentResponse is the public projection of a payment looked up through
// the payment service.
type PaymentResponse struct {
	ID            int64     `json:"id"`
	OrderID       int64     `json:"order_id"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
