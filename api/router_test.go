package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ordersvc/api/health"
	apiorder "ordersvc/api/order"
	orderapp "ordersvc/application/order"
	"ordersvc/config"
	extmock "ordersvc/infrastructure/external/mock"
	"ordersvc/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "ordersvc"
	cfg.App.Version = "test"
	cfg.App.Env = "development"

	service := orderapp.NewService(
		mocks.NewOrderRepository(),
		extmock.NewMemberClient(),
		extmock.NewProductClient(),
		extmock.NewPaymentClient(),
	)

	router := NewRouter(cfg,
		health.NewController(cfg, nil),
		apiorder.NewController(service),
	)
	router.SetupRoutes()
	return router
}

func get(router *Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, req)
	return w
}

func TestHealthRoutesAtRoot(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		w := get(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Probes are not mounted under the API prefix
	w := get(router, "/api/v1/health")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderRoutesUnderAPIPrefix(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/api/v1/orders")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/orders")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRootInfoRoute(t *testing.T) {
	router := newTestRouter(t)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"health":"/health"`)
}
