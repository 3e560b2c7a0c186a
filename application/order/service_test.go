package order

import (
	"context"
	"fmt"
	"testing"

	"ordersvc/domain/external"
	domainorder "ordersvc/domain/order"
	extmock "ordersvc/infrastructure/external/mock"
	"ordersvc/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rejectingPaymentClient fails every charge with a business rejection.
type rejectingPaymentClient struct{}

func (rejectingPaymentClient) ProcessPayment(ctx context.Context, req external.PaymentRequest) (external.Payment, error) {
	return external.Payment{}, fmt.Errorf("card declined: %w", external.ErrRejected)
}

func (rejectingPaymentClient) GetPayment(ctx context.Context, paymentID int64) (external.Payment, error) {
	return external.Payment{}, fmt.Errorf("payment %d: %w", paymentID, external.ErrNotFound)
}

// unavailableMemberClient simulates a member service outage.
type unavailableMemberClient struct{}

func (unavailableMemberClient) GetMember(ctx context.Context, memberID int64) (external.Member, error) {
	return external.Member{}, fmt.Errorf("connection refused: %w", external.ErrUnavailable)
}

func newTestService() (*Service, *mocks.OrderRepository) {
	repo := mocks.NewOrderRepository()
	svc := NewService(repo, extmock.NewMemberClient(), extmock.NewProductClient(), extmock.NewPaymentClient())
	return svc, repo
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		MemberID:      1,
		Items:         []OrderItemRequest{{ProductID: 100, Quantity: 2}},
		PaymentMethod: "CREDIT_CARD",
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.NotNil(t, resp.PaymentID)
	assert.NotNil(t, resp.TransactionID)
	assert.Greater(t, *resp.PaymentID, int64(5000))
	// Mock product price is 99.99, quantity 2
	assert.Equal(t, "199.98", resp.TotalAmount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Mock Product 100", resp.Items[0].ProductName)
	assert.Equal(t, "99.99", resp.Items[0].UnitPrice)
	assert.Equal(t, "199.98", resp.Items[0].Subtotal)
	assert.Equal(t, "Mock Member 1", resp.MemberName)
}

func TestCreateOrderMemberNotFound(t *testing.T) {
	svc, repo := newTestService()

	req := validCreateRequest()
	req.MemberID = 9999
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrMemberNotFound)

	count, err := repo.CountByMember(context.Background(), 9999)
	require.NoError(t, err)
	assert.Zero(t, count, "no order row may exist after a failed member check")
}

func TestCreateOrderInactiveMember(t *testing.T) {
	svc, repo := newTestService()

	req := validCreateRequest()
	req.MemberID = 8888
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrMemberValidation)

	count, _ := repo.CountByMember(context.Background(), 8888)
	assert.Zero(t, count)
}

func TestCreateOrderMemberServiceDown(t *testing.T) {
	repo := mocks.NewOrderRepository()
	svc := NewService(repo, unavailableMemberClient{}, extmock.NewProductClient(), extmock.NewPaymentClient())

	_, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, domainorder.ErrServiceUnavailable)
}

func TestCreateOrderProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Items = []OrderItemRequest{{ProductID: 9999, Quantity: 1}}
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrProductNotFound)
}

func TestCreateOrderProductUnavailable(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Items = []OrderItemRequest{{ProductID: 8888, Quantity: 1}}
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrProductValidation)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, repo := newTestService()

	// Fixture product 7777 has only 2 available
	req := validCreateRequest()
	req.Items = []OrderItemRequest{{ProductID: 7777, Quantity: 5}}
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrInsufficientStock)

	count, _ := repo.CountByStatus(context.Background(), domainorder.StatusPending)
	assert.Zero(t, count, "no order row may exist after a failed stock check")
}

func TestCreateOrderFirstFailureWins(t *testing.T) {
	svc, _ := newTestService()

	// Both items are bad; the first item's error must be reported
	req := validCreateRequest()
	req.Items = []OrderItemRequest{
		{ProductID: 8888, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	}
	_, err := svc.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, domainorder.ErrProductValidation)
}

func TestCreateOrderPaymentRejectedLeavesPendingRow(t *testing.T) {
	repo := mocks.NewOrderRepository()
	svc := NewService(repo, extmock.NewMemberClient(), extmock.NewProductClient(), rejectingPaymentClient{})

	_, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.ErrorIs(t, err, domainorder.ErrPaymentFailed)

	// The first write survives: the order is PENDING in storage
	page, err := svc.ListOrders(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "PENDING", page.Content[0].Status)
	assert.Nil(t, page.Content[0].PaymentID)

	got, err := svc.GetOrder(context.Background(), page.Content[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
}

func TestCreateOrderStockCapacityBoundary(t *testing.T) {
	svc, _ := newTestService()

	// Exactly the available quantity succeeds
	req := validCreateRequest()
	req.Items = []OrderItemRequest{{ProductID: 7777, Quantity: 2}}
	resp, err := svc.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetOrder(context.Background(), 12345)
	require.ErrorIs(t, err, domainorder.ErrOrderNotFound)
}

func TestListOrdersFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, memberID := range []int64{1, 1, 2} {
		req := validCreateRequest()
		req.MemberID = memberID
		_, err := svc.CreateOrder(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.ListOrders(ctx, ListOrdersQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalElements)

	memberOne := int64(1)
	byMember, err := svc.ListOrders(ctx, ListOrdersQuery{MemberID: &memberOne})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byMember.TotalElements)

	confirmed := "CONFIRMED"
	both, err := svc.ListOrders(ctx, ListOrdersQuery{MemberID: &memberOne, Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, int64(2), both.TotalElements)

	pending := "PENDING"
	none, err := svc.ListOrders(ctx, ListOrdersQuery{MemberID: &memberOne, Status: &pending})
	require.NoError(t, err)
	assert.Zero(t, none.TotalElements)
}

func TestListOrdersPagination(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateOrder(ctx, validCreateRequest())
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(ctx, ListOrdersQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListOrdersUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	bad := "SHIPPED"
	_, err := svc.ListOrders(context.Background(), ListOrdersQuery{Status: &bad})
	require.Error(t, err)
}

func TestUpdateOrderCancelConfirmed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, "CONFIRMED", created.Status)

	cancelled := "CANCELLED"
	updated, err := svc.UpdateOrder(ctx, created.ID, UpdateOrderRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", updated.Status)

	// A cancelled order can never be reactivated
	pending := "PENDING"
	_, err = svc.UpdateOrder(ctx, created.ID, UpdateOrderRequest{Status: &pending})
	require.ErrorIs(t, err, domainorder.ErrInvalidOrderStatus)
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc, _ := newTestService()

	cancelled := "CANCELLED"
	_, err := svc.UpdateOrder(context.Background(), 777, UpdateOrderRequest{Status: &cancelled})
	require.ErrorIs(t, err, domainorder.ErrOrderNotFound)
}

func TestUpdateOrderReplacesItemsWhilePending(t *testing.T) {
	repo := mocks.NewOrderRepository()
	svc := NewService(repo, extmock.NewMemberClient(), extmock.NewProductClient(), rejectingPaymentClient{})
	ctx := context.Background()

	// Payment rejection leaves a PENDING order behind
	_, err := svc.CreateOrder(ctx, validCreateRequest())
	require.ErrorIs(t, err, domainorder.ErrPaymentFailed)

	page, err := svc.ListOrders(ctx, ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	orderID := page.Content[0].ID
	oldProductID := page.Content[0].Items[0].ProductID

	updated, err := svc.UpdateOrder(ctx, orderID, UpdateOrderRequest{
		Items: []OrderItemRequest{{ProductID: 200, Quantity: 3}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(200), updated.Items[0].ProductID)
	assert.NotEqual(t, oldProductID, updated.Items[0].ProductID)
	// 99.99 * 3, recomputed from the new item only
	assert.Equal(t, "299.97", updated.TotalAmount)
}

func TestUpdateOrderItemsRejectedWhenConfirmed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateOrder(ctx, created.ID, UpdateOrderRequest{
		Items: []OrderItemRequest{{ProductID: 200, Quantity: 1}},
	})
	require.ErrorIs(t, err, domainorder.ErrInvalidOrderStatus)
	// The message names the item edit, not a status transition
	assert.Contains(t, err.Error(), "cannot update items")
	assert.Contains(t, err.Error(), "CONFIRMED")
}

func TestUpdateOrderPaymentMethodUnconditional(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)

	method := "BANK_TRANSFER"
	updated, err := svc.UpdateOrder(ctx, created.ID, UpdateOrderRequest{PaymentMethod: &method})
	require.NoError(t, err)
	assert.Equal(t, "BANK_TRANSFER", updated.PaymentMethod)
}

func TestUpdateOrderEmptyRequestResaves(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(ctx, created.ID, UpdateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.TotalAmount, updated.TotalAmount)
	// A no-op update still refreshes the update timestamp
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestGetStats(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(ctx, validCreateRequest())
		require.NoError(t, err)
	}

	memberOne := int64(1)
	stats, err := svc.GetStats(ctx, &memberOne)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Confirmed)
	assert.Equal(t, int64(3), stats.Total)
	require.NotNil(t, stats.MemberOrders)
	assert.Equal(t, int64(3), *stats.MemberOrders)
}

func TestGetPayment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	payment, err := svc.GetPayment(ctx, 5001)
	require.NoError(t, err)
	assert.Equal(t, int64(5001), payment.ID)

	_, err = svc.GetPayment(ctx, 9999)
	require.ErrorIs(t, err, domainorder.ErrPaymentNotFound)
}
