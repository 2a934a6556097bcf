package skus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, gw *mockGateway) (http.Handler, *Service) {
	t.Helper()
	svc, _ := newTestService(t, gw)
	handler := NewHandler(slogDiscard(), svc)
	r := chi.NewRouter()
	r.Route("/skus", handler.MountRoutes)
	return r, svc
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

func TestListEndpointFiltersByQuery(t *testing.T) {
	gw := newMockGateway()
	router, svc := newTestRouter(t, gw)
	svc.store.Replace([]SKU{
		{ID: 1, Name: "Steel Bolt", Code: "SB-100", Active: true},
		{ID: 2, Name: "Brass Washer", Code: "BW-220", Active: false},
	})

	rec := doJSON(t, router, http.MethodGet, "/skus?status=Active&q=steel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SKUs     []SKU  `json:"skus"`
		OpenMenu *int64 `json:"open_menu"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.SKUs, 1)
	assert.Equal(t, int64(1), resp.SKUs[0].ID)
	assert.Nil(t, resp.OpenMenu)
}

func TestCreateEndpointValidationError(t *testing.T) {
	gw := newMockGateway()
	router, svc := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/skus", `{"name":"Bolt","code":"B1","price":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, gw.createCalls)
	assert.Equal(t, 0, svc.store.Len())
}

func TestCreateEndpointSuccess(t *testing.T) {
	gw := newMockGateway()
	router, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/skus", `{"name":"Bolt","code":"B1","price":9.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created SKU
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Active)
}

func TestUpdateEndpointUnknownID(t *testing.T) {
	gw := newMockGateway()
	router, _ := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPut, "/skus/42", `{"name":"X","code":"X","price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	gw := newMockGateway()
	router, svc := newTestRouter(t, gw)
	svc.store.Replace([]SKU{{ID: 3, Name: "Bolt", Code: "B1"}})

	rec := doJSON(t, router, http.MethodDelete, "/skus/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.store.Len())
}

func TestMenuEndpoints(t *testing.T) {
	gw := newMockGateway()
	router, svc := newTestRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/skus/7/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.OpenMenuID())
	assert.Equal(t, int64(7), *svc.OpenMenuID())

	rec = doJSON(t, router, http.MethodDelete, "/skus/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.OpenMenuID())
}

func TestToggleEndpoint(t *testing.T) {
	gw := newMockGateway()
	router, svc := newTestRouter(t, gw)
	svc.store.Replace([]SKU{{ID: 5, Name: "Bolt", Code: "B1", Active: false}})

	rec := doJSON(t, router, http.MethodPost, "/skus/5/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var updated SKU
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.Active)
}
