/*
Package order - order API controller.

Responsibilities:
1. Parse and bind HTTP parameters
2. Delegate to the application service
3. Respond through the response package

Error handling:
1. Binding errors respond 400 via response.HandleError
2. Business errors go through response.HandleAppError, which maps the
   domain error to its status code and logs the origin stack
*/
package order

import (
	"net/http"
	"strconv"

	"ordersvc/api/ctxutil"
	"ordersvc/api/response"
	orderapp "ordersvc/application/order"
	"ordersvc/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles the order routes.
type Controller struct {
	orderService *orderapp.Service
}

// NewController creates the order controller.
func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/stats", c.GetStats)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id", c.UpdateOrder)
	}
	router.GET("/payments/:id", c.GetPayment)
}

func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.HandleError(ctx, errors.BadRequest(name+" must be a positive integer"),
			name+" must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// CreateOrder creates an order.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder fetches one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// ListOrders lists orders with optional member/status filters.
// GET /api/v1/orders?member_id=&status=&page=&size=&sort=&direction=
func (c *Controller) ListOrders(ctx *gin.Context) {
	query := orderapp.ListOrdersQuery{
		SortBy:     ctx.Query("sort"),
		Descending: ctx.DefaultQuery("direction", "desc") == "desc",
	}

	if raw := ctx.Query("member_id"); raw != "" {
		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || memberID <= 0 {
			response.HandleError(ctx, errors.BadRequest("member_id must be a positive integer"),
				"member_id must be a positive integer", http.StatusBadRequest)
			return
		}
		query.MemberID = &memberID
	}
	if raw := ctx.Query("status"); raw != "" {
		query.Status = &raw
	}

	var err error
	if query.Page, err = strconv.Atoi(ctx.DefaultQuery("page", "0")); err != nil || query.Page < 0 {
		response.HandleError(ctx, errors.BadRequest("page must be a non-negative integer"),
			"page must be a non-negative integer", http.StatusBadRequest)
		return
	}
	if query.Size, err = strconv.Atoi(ctx.DefaultQuery("size", "20")); err != nil || query.Size <= 0 || query.Size > 100 {
		response.HandleError(ctx, errors.BadRequest("size must be between 1 and 100"),
			"size must be between 1 and 100", http.StatusBadRequest)
		return
	}

	page, err := c.orderService.ListOrders(ctxutil.WithRequestID(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Content, response.Pagination{
		Page:       page.Page,
		PageSize:   page.Size,
		TotalItems: page.TotalElements,
		TotalPages: page.TotalPages,
	}, "orders retrieved successfully")
}

// UpdateOrder applies status / item / payment-method updates.
// PUT /api/v1/orders/:id
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateOrder(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated successfully")
}

// GetStats returns order counts by status, optionally for one member.
// GET /api/v1/orders/stats?member_id=
func (c *Controller) GetStats(ctx *gin.Context) {
	var memberID *int64
	if raw := ctx.Query("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.HandleError(ctx, errors.BadRequest("member_id must be a positive integer"),
				"member_id must be a positive integer", http.StatusBadRequest)
			return
		}
		memberID = &id
	}

	stats, err := c.orderService.GetStats(ctxutil.WithRequestID(ctx), memberID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, stats, "order stats retrieved successfully")
}

// GetPayment looks up a payment through the payment service.
// GET /api/v1/payments/:id
func (c *Controller) GetPayment(ctx *gin.Context) {
	paymentID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	payment, err := c.orderService.GetPayment(ctxutil.WithRequestID(ctx), paymentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, payment, "payment retrieved successfully")
}
