package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentEndpoint(t *testing.T) {
	notifier := NewNotifier(time.Minute)
	r := chi.NewRouter()
	r.Route("/notifications", NewHandler(notifier).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications/current", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notification":null}`, rec.Body.String())

	notifier.Notify("Order Created")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications/current", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Notification *Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Order Created", resp.Notification.Message)
	assert.NotEmpty(t, resp.Notification.ID)
}
