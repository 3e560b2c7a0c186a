// Package po holds persistence objects: flat structs used only for
// database mapping, with no business logic and no GORM associations.
package po

import (
	"time"

	"ordersvc/domain/order"
	"ordersvc/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO maps the orders table. Member data is denormalized; only the
// member id is stored, never a join.
type OrderPO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	MemberID      int64           `gorm:"index;not null"`
	MemberName    string          `gorm:"size:255;not null"`
	Status        string          `gorm:"size:20;index;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"size:20;not null"`
	PaymentID     *int64          `gorm:""`
	TransactionID *string         `gorm:"size:64"`
	CreatedAt     time.Time       `gorm:"index;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

// TableName specifies the table name.
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO maps the order_items table. The order id is a plain column,
// not a GORM association.
type OrderItemPO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"index;not null"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the table name.
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate into persistence objects.
// Item POs carry the order id only when it is already known; on first
// insert the repository fills it in after the order row gets its id.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:            o.ID(),
		MemberID:      o.MemberID(),
		MemberName:    o.MemberName(),
		Status:        string(o.Status()),
		TotalAmount:   o.TotalAmount().Amount(),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentID:     o.PaymentID(),
		TransactionID: o.TransactionID(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			OrderID:     o.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			Subtotal:    item.Subtotal().Amount(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the aggregate from persistence objects.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			UnitPrice:   shared.NewMoney(itemPO.UnitPrice),
			Subtotal:    shared.NewMoney(itemPO.Subtotal),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:            po.ID,
		MemberID:      po.MemberID,
		MemberName:    po.MemberName,
		Status:        order.Status(po.Status),
		Items:         items,
		TotalAmount:   shared.NewMoney(po.TotalAmount),
		PaymentMethod: order.PaymentMethod(po.PaymentMethod),
		PaymentID:     po.PaymentID,
		TransactionID: po.TransactionID,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}
