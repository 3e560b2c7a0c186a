package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	orderapp "ordersvc/application/order"
	extmock "ordersvc/infrastructure/external/mock"
	"ordersvc/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := orderapp.NewService(
		mocks.NewOrderRepository(),
		extmock.NewMemberClient(),
		extmock.NewProductClient(),
		extmock.NewPaymentClient(),
	)

	engine := gin.New()
	group := engine.Group("/api/v1")
	NewController(service).RegisterRoutes(group)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createOrderBody(memberID int64) map[string]interface{} {
	return map[string]interface{}{
		"member_id": memberID,
		"items": []map[string]interface{}{
			{"product_id": 1, "quantity": 2},
		},
		"payment_method": "CREDIT_CARD",
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	engine := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "CONFIRMED", data["status"])
	assert.Equal(t, "199.98", data["total_amount"])
	assert.NotEmpty(t, data["transaction_id"])
}

func TestCreateOrderBindingFailures(t *testing.T) {
	engine := newTestRouter()

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing member_id", map[string]interface{}{
			"items":          []map[string]interface{}{{"product_id": 1, "quantity": 1}},
			"payment_method": "CREDIT_CARD",
		}},
		{"zero quantity", map[string]interface{}{
			"member_id":      1,
			"items":          []map[string]interface{}{{"product_id": 1, "quantity": 0}},
			"payment_method": "CREDIT_CARD",
		}},
		{"negative product id", map[string]interface{}{
			"member_id":      1,
			"items":          []map[string]interface{}{{"product_id": -1, "quantity": 1}},
			"payment_method": "CREDIT_CARD",
		}},
		{"empty items", map[string]interface{}{
			"member_id":      1,
			"items":          []map[string]interface{}{},
			"payment_method": "CREDIT_CARD",
		}},
		{"unknown payment method", map[string]interface{}{
			"member_id":      1,
			"items":          []map[string]interface{}{{"product_id": 1, "quantity": 1}},
			"payment_method": "CASH",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestCreateOrderTooManyItems(t *testing.T) {
	engine := newTestRouter()

	items := make([]map[string]interface{}, 101)
	for i := range items {
		items[i] = map[string]interface{}{"product_id": i + 1, "quantity": 1}
	}

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"member_id":      1,
		"items":          items,
		"payment_method": "CREDIT_CARD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderBusinessFailures(t *testing.T) {
	engine := newTestRouter()

	cases := []struct {
		name       string
		memberID   int64
		wantStatus int
		wantError  string
	}{
		{"member not found", 9999, http.StatusNotFound, "MEMBER_NOT_FOUND"},
		{"member inactive", 8888, http.StatusBadRequest, "MEMBER_VALIDATION"},
		{"member service down", 7777, http.StatusServiceUnavailable, "EXTERNAL_SERVICE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(tc.memberID))
			require.Equal(t, tc.wantStatus, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	engine := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"member_id":      1,
		"items":          []map[string]interface{}{{"product_id": 7777, "quantity": 5}},
		"payment_method": "CREDIT_CARD",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, w)["error"])
}

func TestGetOrderEndpoint(t *testing.T) {
	engine := newTestRouter()

	created := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["data"].(map[string]interface{})["id"].(float64)

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", int64(id)), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, id, data["id"])
	assert.Equal(t, "CONFIRMED", data["status"])
}

func TestGetOrderInvalidID(t *testing.T) {
	engine := newTestRouter()

	for _, path := range []string{"/api/v1/orders/abc", "/api/v1/orders/-1", "/api/v1/orders/0"} {
		w := doJSON(t, engine, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	engine := newTestRouter()

	w := doJSON(t, engine, http.MethodGet, "/api/v1/orders/424242", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestListOrdersEndpoint(t *testing.T) {
	engine := newTestRouter()

	for i := 0; i < 3; i++ {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/orders?page=0&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 2)

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total_items"])
	assert.Equal(t, float64(2), pagination["total_pages"])
}

func TestListOrdersQueryValidation(t *testing.T) {
	engine := newTestRouter()

	cases := []string{
		"/api/v1/orders?page=-1",
		"/api/v1/orders?size=0",
		"/api/v1/orders?size=101",
		"/api/v1/orders?member_id=abc",
		"/api/v1/orders?member_id=0",
		"/api/v1/orders?status=SHIPPED",
	}
	for _, path := range cases {
		w := doJSON(t, engine, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestListOrdersStatusFilter(t *testing.T) {
	engine := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders?status=CONFIRMED", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders?status=PENDING", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestUpdateOrderCancel(t *testing.T) {
	engine := newTestRouter()

	created := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
	require.Equal(t, http.StatusCreated, created.Code)
	id := int64(decodeBody(t, created)["data"].(map[string]interface{})["id"].(float64))

	w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", id), map[string]interface{}{
		"status": "CANCELLED",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "CANCELLED", data["status"])

	// CANCELLED is terminal
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", id), map[string]interface{}{
		"status": "CONFIRMED",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ORDER_STATUS", decodeBody(t, w)["error"])
}

func TestUpdateOrderBindingValidation(t *testing.T) {
	engine := newTestRouter()

	created := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
	require.Equal(t, http.StatusCreated, created.Code)
	id := int64(decodeBody(t, created)["data"].(map[string]interface{})["id"].(float64))

	w := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", id), map[string]interface{}{
		"status": "SHIPPED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", id), map[string]interface{}{
		"payment_method": "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderNotFound(t *testing.T) {
	engine := newTestRouter()

	w := doJSON(t, engine, http.MethodPut, "/api/v1/orders/424242", map[string]interface{}{
		"status": "CANCELLED",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeBody(t, w)["error"])
}

func TestStatsEndpoint(t *testing.T) {
	engine := newTestRouter()

	for i := 0; i < 2; i++ {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, engine, http.MethodGet, "/api/v1/orders/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["confirmed"])
	assert.Equal(t, float64(0), data["pending"])
	assert.Equal(t, float64(2), data["total"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders/stats?member_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["member_orders"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders/stats?member_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPaymentEndpoint(t *testing.T) {
	engine := newTestRouter()

	created := doJSON(t, engine, http.MethodPost, "/api/v1/orders", createOrderBody(1))
	require.Equal(t, http.StatusCreated, created.Code)
	paymentID := int64(decodeBody(t, created)["data"].(map[string]interface{})["payment_id"].(float64))

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/payments/%d", paymentID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(paymentID), data["id"])
	assert.Equal(t, "99.99", data["amount"])

	w = doJSON(t, engine, http.MethodGet, "/api/v1/payments/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PAYMENT_NOT_FOUND", decodeBody(t, w)["error"])
}
