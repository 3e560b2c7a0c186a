package mysql

import (
	"context"
	"errors"
	"fmt"

	"ordersvc/domain/order"
	"ordersvc/domain/shared"
	"ordersvc/infrastructure/persistence"
	"ordersvc/infrastructure/persistence/mysql/po"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlErrDuplicateEntry = 1062

// classifyWriteError surfaces duplicate-key violations as conflicts so the
// API layer can answer 409 instead of 500.
func classifyWriteError(err error) error {
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return shared.NewConflictError("order", mysqlErr.Message)
	}
	return err
}

// OrderRepository is the MySQL/GORM implementation of order.Repository.
// Orders and items are managed manually; GORM association features are
// not used so the aggregate boundary stays explicit.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if present, otherwise the
// default handle bound to ctx.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the aggregate and returns the stored state. New orders and
// items get their ids from the database. Items are replaced wholesale:
// delete then insert, inside one transaction.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	orderPO, itemPOs := po.FromOrderDomain(o)

	run := func(tx *gorm.DB) error {
		if orderPO.ID == 0 {
			if err := tx.Create(orderPO).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(orderPO).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", orderPO.ID).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}

		if len(itemPOs) > 0 {
			for i := range itemPOs {
				itemPOs[i].ID = 0
				itemPOs[i].OrderID = orderPO.ID
			}
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if tx := persistence.TxFromContext(ctx); tx != nil {
		err = run(tx)
	} else {
		err = r.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		return nil, classifyWriteError(err)
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindByIDWithItems loads one order and its items.
func (r *OrderRepository) FindByIDWithItems(ctx context.Context, id int64) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Items are queried separately, not preloaded
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// sortColumns whitelists sortable columns. An empty or unrecognized sort
// field falls back to created_at; the requested direction applies either
// way.
var sortColumns = map[string]string{
	"id":           "id",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"total_amount": "total_amount",
	"status":       "status",
}

func orderClause(req shared.PageRequest) string {
	column, ok := sortColumns[req.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if req.Descending {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// FindPage returns one page of orders matching the filter, items included.
// Items for the whole page are fetched in a single IN query.
func (r *OrderRepository) FindPage(ctx context.Context, filter order.Filter, req shared.PageRequest) (shared.Page[*order.Order], error) {
	db := r.getDB(ctx)

	query := db.Model(&po.OrderPO{})
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Page[*order.Order]{}, err
	}

	var orderPOs []po.OrderPO
	if err := query.
		Order(orderClause(req)).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&orderPOs).Error; err != nil {
		return shared.Page[*order.Order]{}, err
	}

	itemsByOrder, err := r.loadItems(db, orderPOs)
	if err != nil {
		return shared.Page[*order.Order]{}, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		orders[i] = orderPO.ToDomain(itemsByOrder[orderPO.ID])
	}

	return shared.NewPage(orders, req, total), nil
}

func (r *OrderRepository) loadItems(db *gorm.DB, orderPOs []po.OrderPO) (map[int64][]po.OrderItemPO, error) {
	if len(orderPOs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(orderPOs))
	for i, orderPO := range orderPOs {
		ids[i] = orderPO.ID
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	grouped := make(map[int64][]po.OrderItemPO, len(orderPOs))
	for _, itemPO := range itemPOs {
		grouped[itemPO.OrderID] = append(grouped[itemPO.OrderID], itemPO)
	}
	return grouped, nil
}

// CountByMember returns the number of orders placed by a member.
func (r *OrderRepository) CountByMember(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}

// CountByStatus returns the number of orders in the given status.
func (r *OrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

var _ order.Repository = (*OrderRepository)(nil)
