package skus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skudeck/skudeck/internal/notify"
	"github.com/skudeck/skudeck/internal/platform/httpx"
)

// ============================================================================
// MOCK GATEWAY
// ============================================================================

type mockGateway struct {
	listResult  []SKU
	listErr     error
	createErr   error
	createCalls int
	updateCalls int
	deleteCalls int
	patched     map[int64]map[string]any
	nextID      int64
}

func newMockGateway() *mockGateway {
	return &mockGateway{nextID: 1, patched: make(map[int64]map[string]any)}
}

func (m *mockGateway) ListSKUs(ctx context.Context) ([]SKU, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockGateway) CreateSKU(ctx context.Context, sku SKU) (*SKU, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	sku.ID = m.nextID
	m.nextID++
	return &sku, nil
}

func (m *mockGateway) UpdateSKU(ctx context.Context, id int64, sku SKU) (*SKU, error) {
	m.updateCalls++
	sku.ID = id
	return &sku, nil
}

func (m *mockGateway) PatchSKU(ctx context.Context, id int64, fields map[string]any) (*SKU, error) {
	m.patched[id] = fields
	active, _ := fields["active"].(bool)
	return &SKU{ID: id, Name: "patched", Code: "P", Active: active}, nil
}

func (m *mockGateway) DeleteSKU(ctx context.Context, id int64) error {
	m.deleteCalls++
	return nil
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, gw *mockGateway) (*Service, *notify.Notifier) {
	t.Helper()
	notifier := notify.NewNotifier(time.Minute)
	return NewService(NewStore(), gw, notifier, nil, slogDiscard()), notifier
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateSKUAppendsGatewayEntity(t *testing.T) {
	gw := newMockGateway()
	svc, notifier := newTestService(t, gw)
	emissions := notifier.Subscribe()

	created, err := svc.Create(context.Background(), CreateSKURequest{Name: "Bolt", Code: "B1", Price: 9.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, 1, svc.store.Len())

	notification := <-emissions
	assert.Equal(t, "SKU Added", notification.Message)
}

func TestCreateSKUInvalidInput(t *testing.T) {
	gw := newMockGateway()
	svc, notifier := newTestService(t, gw)
	emissions := notifier.Subscribe()

	cases := []CreateSKURequest{
		{Name: "", Code: "B1", Price: 10},
		{Name: "Bolt", Code: "", Price: 10},
		{Name: "Bolt", Code: "B1", Price: -5},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.ErrorIs(t, err, httpx.ErrInvalidInput)
	}

	// Rejected forms never reach the gateway and leave the store empty.
	assert.Equal(t, 0, gw.createCalls)
	assert.Equal(t, 0, svc.store.Len())

	notification := <-emissions
	assert.Equal(t, "Invalid input", notification.Message)
}

func TestEditSKUReplacesEntity(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)
	svc.store.Replace([]SKU{{ID: 7, Name: "Old", Code: "O1", Price: 1, Active: true}})

	updated, err := svc.Edit(context.Background(), 7, UpdateSKURequest{Name: "New", Code: "N1", Price: 2, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	stored, ok := svc.store.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "New", stored.Name)
	assert.Equal(t, 2.0, stored.Price)
}

func TestEditSKUUnknownID(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)

	_, err := svc.Edit(context.Background(), 42, UpdateSKURequest{Name: "X", Code: "X", Price: 1})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Equal(t, 0, gw.updateCalls)
}

func TestDeleteSKURequiresGatewayConfirmation(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)
	svc.store.Replace([]SKU{{ID: 3, Name: "Bolt", Code: "B1"}})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, 1, gw.deleteCalls)
	assert.Equal(t, 0, svc.store.Len())
}

func TestToggleActiveSendsInvertedFlag(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)
	svc.store.Replace([]SKU{{ID: 5, Name: "Bolt", Code: "B1", Active: true}})

	updated, err := svc.ToggleActive(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, map[string]any{"active": false}, gw.patched[5])

	stored, ok := svc.store.Lookup(5)
	require.True(t, ok)
	assert.False(t, stored.Active)
}

func TestActionMenuSingleOpen(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)

	assert.Nil(t, svc.OpenMenuID())

	svc.OpenMenu(1)
	require.NotNil(t, svc.OpenMenuID())
	assert.Equal(t, int64(1), *svc.OpenMenuID())

	// Opening another menu closes the first implicitly.
	svc.OpenMenu(2)
	assert.Equal(t, int64(2), *svc.OpenMenuID())

	svc.CloseMenu()
	assert.Nil(t, svc.OpenMenuID())
}

func TestDeleteClosesOwnMenu(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)
	svc.store.Replace([]SKU{{ID: 3, Name: "Bolt", Code: "B1"}, {ID: 4, Name: "Nut", Code: "N1"}})

	svc.OpenMenu(4)
	require.NoError(t, svc.Delete(context.Background(), 3))
	require.NotNil(t, svc.OpenMenuID())
	assert.Equal(t, int64(4), *svc.OpenMenuID())

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Nil(t, svc.OpenMenuID())
}

func TestRefreshGatewayFailureNotifies(t *testing.T) {
	gw := newMockGateway()
	gw.listErr = httpx.ErrGatewayFailure
	svc, notifier := newTestService(t, gw)
	emissions := notifier.Subscribe()

	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, httpx.ErrGatewayFailure)
	assert.Equal(t, 0, svc.store.Len())

	notification := <-emissions
	assert.Equal(t, "Failed to load SKUs", notification.Message)
}

func TestListDerivesFromSnapshot(t *testing.T) {
	gw := newMockGateway()
	svc, _ := newTestService(t, gw)
	svc.store.Replace([]SKU{
		{ID: 1, Name: "Bolt", Code: "B1", Active: true},
		{ID: 2, Name: "Nut", Code: "N1", Active: false},
	})

	out := svc.List(ListSKUsRequest{Status: StatusFilterActive})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	out = svc.List(ListSKUsRequest{Search: "nut"})
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}
