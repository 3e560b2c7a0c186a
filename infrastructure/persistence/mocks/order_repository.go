// Package mocks provides in-memory repository implementations used in
// development mode and in tests. They honor the same contracts as the
// MySQL implementations, including storage-assigned ids.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"ordersvc/domain/order"
	"ordersvc/domain/shared"
)

// OrderRepository is the in-memory implementation of order.Repository.
type OrderRepository struct {
	mu         sync.RWMutex
	orders     map[int64]*order.Order
	nextOrder  int64
	nextItem   int64
}

// NewOrderRepository creates an empty in-memory repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:    make(map[int64]*order.Order),
		nextOrder: 1,
		nextItem:  1,
	}
}

// clone deep-copies an aggregate so callers never share state with the map.
func clone(o *order.Order) *order.Order {
	items := o.Items()
	copied := make([]order.OrderItem, len(items))
	for i, item := range items {
		copied[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		})
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:            o.ID(),
		MemberID:      o.MemberID(),
		MemberName:    o.MemberName(),
		Status:        o.Status(),
		Items:         copied,
		TotalAmount:   o.TotalAmount(),
		PaymentMethod: o.PaymentMethod(),
		PaymentID:     o.PaymentID(),
		TransactionID: o.TransactionID(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	})
}

// Save stores the aggregate, assigning order and item ids on first save,
// and returns the stored state. Updates refresh the update timestamp, same
// as the MySQL variant does through autoUpdateTime.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orderID := o.ID()
	updatedAt := o.UpdatedAt()
	if orderID == 0 {
		orderID = r.nextOrder
		r.nextOrder++
	} else {
		updatedAt = time.Now()
	}

	items := o.Items()
	storedItems := make([]order.OrderItem, len(items))
	for i, item := range items {
		itemID := item.ID()
		if itemID == 0 {
			itemID = r.nextItem
			r.nextItem++
		}
		storedItems[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemID,
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		})
	}

	stored := order.RebuildFromDTO(order.ReconstructionDTO{
		ID:            orderID,
		MemberID:      o.MemberID(),
		MemberName:    o.MemberName(),
		Status:        o.Status(),
		Items:         storedItems,
		TotalAmount:   o.TotalAmount(),
		PaymentMethod: o.PaymentMethod(),
		PaymentID:     o.PaymentID(),
		TransactionID: o.TransactionID(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     updatedAt,
	})

	r.orders[orderID] = stored
	return clone(stored), nil
}

// FindByIDWithItems loads one order by id.
func (r *OrderRepository) FindByIDWithItems(ctx context.Context, id int64) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return clone(o), nil
}

// FindPage filters with the specification derived from the filter, sorts,
// and slices out the requested page.
func (r *OrderRepository) FindPage(ctx context.Context, filter order.Filter, req shared.PageRequest) (shared.Page[*order.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec := order.SpecificationFromFilter(filter)
	matched := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if spec.IsSatisfiedBy(ctx, o) {
			matched = append(matched, o)
		}
	}

	sortOrders(matched, req)

	total := int64(len(matched))
	start := req.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.Size
	if req.Size <= 0 || end > len(matched) {
		end = len(matched)
	}

	page := make([]*order.Order, 0, end-start)
	for _, o := range matched[start:end] {
		page = append(page, clone(o))
	}

	return shared.NewPage(page, req, total), nil
}

func sortOrders(orders []*order.Order, req shared.PageRequest) {
	less := func(a, b *order.Order) bool {
		switch req.SortBy {
		case "id":
			return a.ID() < b.ID()
		case "updated_at":
			return a.UpdatedAt().Before(b.UpdatedAt())
		case "total_amount":
			return a.TotalAmount().Amount().LessThan(b.TotalAmount().Amount())
		case "status":
			return a.Status() < b.Status()
		default:
			return a.CreatedAt().Before(b.CreatedAt())
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if req.Descending {
			return less(orders[j], orders[i])
		}
		return less(orders[i], orders[j])
	})
}

// CountByMember returns the number of orders placed by a member.
func (r *OrderRepository) CountByMember(ctx context.Context, memberID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, o := range r.orders {
		if o.MemberID() == memberID {
			count++
		}
	}
	return count, nil
}

// CountByStatus returns the number of orders in the given status.
func (r *OrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, o := range r.orders {
		if o.Status() == status {
			count++
		}
	}
	return count, nil
}

var _ order.Repository = (*OrderRepository)(nil)
