package mocks

import (
	"context"
	"testing"

	"ordersvc/domain/order"
	"ordersvc/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, repo *OrderRepository) *order.Order {
	t.Helper()

	o, err := order.NewOrder(1, "Test Member", order.PaymentMethodCreditCard)
	require.NoError(t, err)

	price, err := shared.NewMoneyFromString("10.00")
	require.NoError(t, err)
	item, err := order.NewOrderItem(100, "product", 1, price)
	require.NoError(t, err)
	o.AddItem(item)

	stored, err := repo.Save(context.Background(), o)
	require.NoError(t, err)
	return stored
}

func TestSaveAssignsIDs(t *testing.T) {
	repo := NewOrderRepository()

	first := newStoredOrder(t, repo)
	second := newStoredOrder(t, repo)

	assert.Equal(t, int64(1), first.ID())
	assert.Equal(t, int64(2), second.ID())
	require.Len(t, first.Items(), 1)
	assert.NotZero(t, first.Items()[0].ID())
}

func TestSaveUpdateRefreshesUpdatedAt(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	stored := newStoredOrder(t, repo)
	firstSaved := stored.UpdatedAt()

	// Re-save without touching the aggregate; the store refreshes the
	// update timestamp like the MySQL variant does
	resaved, err := repo.Save(ctx, stored)
	require.NoError(t, err)

	assert.True(t, resaved.UpdatedAt().After(firstSaved),
		"updated_at did not refresh: first=%v resaved=%v", firstSaved, resaved.UpdatedAt())
	assert.Equal(t, stored.CreatedAt(), resaved.CreatedAt())
}

func TestSaveInsertKeepsAggregateTimestamps(t *testing.T) {
	repo := NewOrderRepository()

	o, err := order.NewOrder(1, "Test Member", order.PaymentMethodCreditCard)
	require.NoError(t, err)
	price, _ := shared.NewMoneyFromString("10.00")
	item, err := order.NewOrderItem(100, "product", 1, price)
	require.NoError(t, err)
	o.AddItem(item)

	stored, err := repo.Save(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, o.CreatedAt(), stored.CreatedAt())
	assert.Equal(t, o.UpdatedAt(), stored.UpdatedAt())
}

func TestFindPageDirectionOnDefaultColumn(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	first := newStoredOrder(t, repo)
	second := newStoredOrder(t, repo)
	third := newStoredOrder(t, repo)

	desc, err := repo.FindPage(ctx, order.Filter{}, shared.PageRequest{Size: 10, Descending: true})
	require.NoError(t, err)
	require.Len(t, desc.Content, 3)
	assert.Equal(t, third.ID(), desc.Content[0].ID())
	assert.Equal(t, second.ID(), desc.Content[1].ID())
	assert.Equal(t, first.ID(), desc.Content[2].ID())

	asc, err := repo.FindPage(ctx, order.Filter{}, shared.PageRequest{Size: 10, Descending: false})
	require.NoError(t, err)
	require.Len(t, asc.Content, 3)
	assert.Equal(t, first.ID(), asc.Content[0].ID())
	assert.Equal(t, second.ID(), asc.Content[1].ID())
	assert.Equal(t, third.ID(), asc.Content[2].ID())
}
