package orders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skudeck/skudeck/internal/platform/httpx"
	"github.com/skudeck/skudeck/internal/skus"
)

func newTestRouter(t *testing.T, gw *mockGateway) (http.Handler, *Service, *skus.Store) {
	t.Helper()
	svc, _, skuStore := newTestService(t, gw, &mockEnqueuer{})
	handler := NewHandler(testLogger(), svc)
	r := chi.NewRouter()
	r.Route("/orders", handler.MountRoutes)
	return r, svc, skuStore
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListEndpointReturnsPageMetadata(t *testing.T) {
	gw := newMockGateway()
	router, svc, _ := newTestRouter(t, gw)

	var input []Order
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 15; i++ {
		status := OrderStatusNew
		if i%3 == 0 {
			status = OrderStatusDelivered
		}
		input = append(input, Order{ID: i, Name: "Customer", Status: status, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	seedOrders(t, svc, gw, input)

	rec := doJSON(t, router, http.MethodGet, "/orders?status=New&page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, len(resp.Orders))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 10, resp.Total)
	for _, order := range resp.Orders {
		assert.Equal(t, OrderStatusNew, order.Status)
	}
}

func TestCreateEndpointRejectsMalformedBody(t *testing.T) {
	gw := newMockGateway()
	router, _, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, gw.createCalls)
}

func TestCreateEndpointValidationError(t *testing.T) {
	gw := newMockGateway()
	router, _, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/orders", `{"name":"","email":"x","phone":"1","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Invalid Input", problem.Title)
}

func TestCreateEndpointSuccess(t *testing.T) {
	gw := newMockGateway()
	router, _, skuStore := newTestRouter(t, gw)
	skuStore.Replace([]skus.SKU{{ID: 1, Name: "Bolt", Code: "B1", Price: 100, Active: true}})

	body := `{"name":"Asha Rao","email":"asha@example.com","phone":"9876543210","items":[{"skuId":1,"qty":2}]}`
	rec := doJSON(t, router, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 200.0, created.Total)
	assert.Equal(t, OrderStatusNew, created.Status)
}

func TestSelectEndpointUnknownOrder(t *testing.T) {
	gw := newMockGateway()
	router, _, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/orders/42/select", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkEndpointEmptySelection(t *testing.T) {
	gw := newMockGateway()
	router, svc, _ := newTestRouter(t, gw)
	seedOrders(t, svc, gw, []Order{{ID: 1, Status: OrderStatusNew}})

	rec := doJSON(t, router, http.MethodPost, "/orders/bulk", `{"status":"Delivered"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBulkEndpointUnknownStatus(t *testing.T) {
	gw := newMockGateway()
	router, _, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/orders/bulk", `{"status":"Shipped"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkFlowOverHTTP(t *testing.T) {
	gw := newMockGateway()
	router, svc, _ := newTestRouter(t, gw)
	seedOrders(t, svc, gw, []Order{
		{ID: 1, Status: OrderStatusNew},
		{ID: 2, Status: OrderStatusNew},
	})

	rec := doJSON(t, router, http.MethodPost, "/orders/1/select", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/orders/bulk", `{"status":"Cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/orders/bulk/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var applied PendingMutation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applied))
	assert.Equal(t, OrderStatusCancelled, applied.Status)
	assert.Equal(t, []int64{1}, applied.IDs)

	order, ok := svc.store.Get(1)
	require.True(t, ok)
	assert.Equal(t, OrderStatusCancelled, order.Status)
}

func TestRefreshEndpointGatewayFailure(t *testing.T) {
	gw := newMockGateway()
	router, _, _ := newTestRouter(t, gw)
	gw.listErr = httpx.ErrGatewayFailure

	rec := doJSON(t, router, http.MethodPost, "/orders/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
