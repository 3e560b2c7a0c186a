/*
Package order - order subdomain, the core of the service.

The Order aggregate root maintains the consistency boundary of an order:
all modifications to Order and OrderItem go through the aggregate root,
which keeps the running total equal to the sum of item subtotals and
enforces the status state machine.
*/
package order

import (
	"time"

	"ordersvc/domain/shared"
)

// Order is the aggregate root. It exclusively owns its OrderItems: items
// carry no back-reference, and "which order" is implicit in containment.
type Order struct {
	id            int64
	memberID      int64
	memberName    string
	status        Status
	items         []OrderItem
	totalAmount   shared.Money
	paymentMethod PaymentMethod
	paymentID     *int64
	transactionID *string
	createdAt     time.Time
	updatedAt     time.Time
}

// OrderItem is one priced, quantified line within an Order. Product name
// and unit price are denormalized at the time the item is added; later
// reads never re-fetch them.
type OrderItem struct {
	id          int64
	productID   int64
	productName string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// NewOrder creates the order shell for the creation pipeline: PENDING
// status, denormalized member name, zero total, no items yet.
func NewOrder(memberID int64, memberName string, method PaymentMethod) (*Order, error) {
	if memberID <= 0 {
		return nil, shared.NewValidationError("order", "member_id", "member id must be positive")
	}
	if _, ok := ParsePaymentMethod(string(method)); !ok {
		return nil, shared.NewValidationError("order", "payment_method", "unknown payment method: "+string(method))
	}

	now := time.Now()
	return &Order{
		memberID:      memberID,
		memberName:    memberName,
		status:        StatusPending,
		items:         make([]OrderItem, 0),
		totalAmount:   shared.ZeroMoney(),
		paymentMethod: method,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// NewOrderItem constructs an item, capturing the current product name and
// unit price. The subtotal is computed here and whenever quantity or price
// would change (items are immutable, so in practice only here).
func NewOrderItem(productID int64, productName string, quantity int, unitPrice shared.Money) (OrderItem, error) {
	if productID <= 0 {
		return OrderItem{}, shared.NewValidationError("order_item", "product_id", "product id must be positive")
	}
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, shared.NewValidationError("order_item", "unit_price", "unit price must not be negative")
	}

	return OrderItem{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		subtotal:    unitPrice.MultiplyInt(quantity),
	}, nil
}

// ============================================================================
// Item management - entities within the aggregate are only reachable
// through the aggregate root
// ============================================================================

// AddItem appends an item and recomputes the total.
func (o *Order) AddItem(item OrderItem) {
	o.items = append(o.items, item)
	o.recalculateTotal()
	o.updatedAt = time.Now()
}

// RemoveItem removes the item with the given id and recomputes the total.
func (o *Order) RemoveItem(itemID int64) error {
	for i, item := range o.items {
		if item.id == itemID {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.recalculateTotal()
			o.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// ClearItems empties the item collection. Used immediately before an
// item-replacement update; the caller re-validates and rebuilds items.
func (o *Order) ClearItems() {
	o.items = o.items[:0]
	o.recalculateTotal()
	o.updatedAt = time.Now()
}

// recalculateTotal keeps the invariant totalAmount == Σ item subtotals.
func (o *Order) recalculateTotal() {
	total := shared.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.subtotal)
	}
	o.totalAmount = total
}

// ============================================================================
// State machine
// ============================================================================

// CanUpdateItems reports whether items and payment method may still be
// edited: only before payment has been attempted.
func (o *Order) CanUpdateItems() bool {
	return o.status == StatusPending
}

// CanBeCancelled reports whether the order may be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.status == StatusConfirmed
}

// TransitionTo moves the order to target per the transition table.
// A same-state transition is a no-op accepted without error.
func (o *Order) TransitionTo(target Status) error {
	if o.status == target {
		return nil
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidOrderStatusError(string(o.status), string(target))
	}
	o.status = target
	o.updatedAt = time.Now()
	return nil
}

// ApplyPayment records a successful payment: paymentID and transactionID
// are set together and never cleared afterwards, and the order moves to
// CONFIRMED. Only a PENDING order can accept a payment.
func (o *Order) ApplyPayment(paymentID int64, transactionID string) error {
	if o.status != StatusPending {
		return NewInvalidOrderStatusError(string(o.status), string(StatusConfirmed))
	}
	if o.paymentID != nil {
		return NewInvalidOrderStatusError(string(o.status), string(StatusConfirmed))
	}
	o.paymentID = &paymentID
	o.transactionID = &transactionID
	o.status = StatusConfirmed
	o.updatedAt = time.Now()
	return nil
}

// SetPaymentMethod updates the payment method. The update pipeline applies
// no status guard to this field in isolation.
func (o *Order) SetPaymentMethod(method PaymentMethod) error {
	if _, ok := ParsePaymentMethod(string(method)); !ok {
		return shared.NewValidationError("order", "payment_method", "unknown payment method: "+string(method))
	}
	o.paymentMethod = method
	o.updatedAt = time.Now()
	return nil
}

// ============================================================================
// Getters - read-only accessors
// ============================================================================

func (o *Order) ID() int64          { return o.id }
func (o *Order) MemberID() int64    { return o.memberID }
func (o *Order) MemberName() string { return o.memberName }
func (o *Order) Status() Status     { return o.status }

// Items returns a copy; aggregate internals cannot be mutated from outside.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() shared.Money        { return o.totalAmount }
func (o *Order) PaymentMethod() PaymentMethod     { return o.paymentMethod }
func (o *Order) PaymentID() *int64                { return o.paymentID }
func (o *Order) TransactionID() *string           { return o.transactionID }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

func (item OrderItem) ID() int64               { return item.id }
func (item OrderItem) ProductID() int64        { return item.productID }
func (item OrderItem) ProductName() string     { return item.productName }
func (item OrderItem) Quantity() int           { return item.quantity }
func (item OrderItem) UnitPrice() shared.Money { return item.unitPrice }
func (item OrderItem) Subtotal() shared.Money  { return item.subtotal }

// ============================================================================
// Reconstruction - for repository layer use only
// ============================================================================
//
// Fields are private, so the repository reconstructs aggregates through a
// DTO + factory pair instead of setters or reflection. Do not call these
// from the application layer.

// ReconstructionDTO carries persisted state back into an Order.
type ReconstructionDTO struct {
	ID            int64
	MemberID      int64
	MemberName    string
	Status        Status
	Items         []OrderItem
	TotalAmount   shared.Money
	PaymentMethod PaymentMethod
	PaymentID     *int64
	TransactionID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs an Order aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:            dto.ID,
		memberID:      dto.MemberID,
		memberName:    dto.MemberName,
		status:        dto.Status,
		items:         dto.Items,
		totalAmount:   dto.TotalAmount,
		paymentMethod: dto.PaymentMethod,
		paymentID:     dto.PaymentID,
		transactionID: dto.TransactionID,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// ItemReconstructionDTO carries persisted item state.
type ItemReconstructionDTO struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO reconstructs an OrderItem from persisted state.
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}
