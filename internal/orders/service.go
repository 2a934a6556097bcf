package orders

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/skudeck/skudeck/internal/notify"
	"github.com/skudeck/skudeck/internal/observability"
	"github.com/skudeck/skudeck/internal/platform/httpx"
	"github.com/skudeck/skudeck/internal/shared"
	"github.com/skudeck/skudeck/internal/skus"
)

// Gateway is the slice of the remote data gateway the order workflows consume.
type Gateway interface {
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, order Order) (*Order, error)
	PatchOrder(ctx context.Context, id int64, fields map[string]any) (*Order, error)
}

// StatusSyncEnqueuer queues the background persistence of a confirmed bulk
// status change against the gateway.
type StatusSyncEnqueuer interface {
	EnqueueStatusSync(ctx context.Context, ids []int64, status string) error
}

type Service struct {
	store    *Store
	skuStore *skus.Store
	gateway  Gateway
	notifier *notify.Notifier
	enqueuer StatusSyncEnqueuer
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *slog.Logger
	pageSize int

	refreshSeq   atomic.Uint64
	refreshGroup singleflight.Group

	bulk *bulkState
}

func NewService(
	store *Store,
	skuStore *skus.Store,
	gateway Gateway,
	notifier *notify.Notifier,
	enqueuer StatusSyncEnqueuer,
	metrics *observability.Metrics,
	logger *slog.Logger,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		skuStore: skuStore,
		gateway:  gateway,
		notifier: notifier,
		enqueuer: enqueuer,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
		pageSize: pageSize,
		bulk:     newBulkState(),
	}
}

// Refresh rebuilds the store from the gateway. Concurrent refreshes collapse
// into a single flight and a response older than the last applied one is
// dropped instead of clobbering newer data.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("orders", func() (any, error) {
		token := s.refreshSeq.Add(1)
		fetched, err := s.gateway.ListOrders(ctx)
		s.metrics.ObserveGatewayCall("orders.list", err)
		if err != nil {
			return nil, fmt.Errorf("refresh orders: %w", err)
		}
		if !s.store.ReplaceIfNewer(fetched, token) {
			s.logger.Warn("discarded stale order refresh", "token", token)
		}
		return nil, nil
	})
	if err != nil {
		s.notify("Failed to load orders")
	}
	return err
}

// List clamps the requested page into range and derives the visible slice.
func (s *Service) List(q ListQuery) ListResponse {
	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}
	snapshot := s.store.Snapshot()

	filtered := DeriveAll(snapshot, q)
	pg := shared.NewPagination(q.Page, q.PageSize, len(filtered))
	q.Page = shared.ClampPage(pg.Page, pg.TotalPages)

	visible, totalPages := Derive(snapshot, q)
	return ListResponse{
		Orders:     visible,
		Page:       q.Page,
		TotalPages: totalPages,
		Total:      len(filtered),
		Selected:   s.bulk.selectedIDs(),
		Staged:     s.bulk.snapshot(),
	}
}

// Export returns the filtered and sorted set without pagination.
func (s *Service) Export(q ListQuery) []Order {
	return DeriveAll(s.store.Snapshot(), q)
}

// Create validates customer details and items, computes the total as a
// snapshot of current SKU prices, and appends the gateway-returned entity.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := s.validate.Struct(req); err != nil {
		s.notify("Invalid customer details")
		return nil, fmt.Errorf("%w: %v", httpx.ErrInvalidInput, err)
	}

	items := make([]OrderItem, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		sku, ok := s.skuStore.Lookup(item.SKUID)
		if !ok || !sku.Active {
			s.notify("Invalid customer details")
			return nil, fmt.Errorf("%w: unknown or inactive sku %d", httpx.ErrInvalidInput, item.SKUID)
		}
		total += sku.Price * float64(item.Quantity)
		items = append(items, OrderItem{SKUID: item.SKUID, Quantity: item.Quantity})
	}

	order := Order{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
		Items:     items,
		Total:     total,
		Status:    OrderStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.gateway.CreateOrder(ctx, order)
	s.metrics.ObserveGatewayCall("orders.create", err)
	if err != nil {
		s.logger.Error("create order failed", "error", err)
		s.notify("Failed to create order")
		return nil, err
	}

	s.store.Append(*created)
	s.notify("Order Created")
	return created, nil
}

// ToggleSelect flips an order in or out of the selection set.
func (s *Service) ToggleSelect(id int64) (bool, error) {
	if _, ok := s.store.Get(id); !ok {
		return false, fmt.Errorf("%w: order %d", httpx.ErrNotFound, id)
	}
	return s.bulk.toggle(id), nil
}

// SelectedIDs returns the current selection in ascending order.
func (s *Service) SelectedIDs() []int64 {
	return s.bulk.selectedIDs()
}

// StageBulkUpdate snapshots the selection against the target status and
// waits for an explicit confirm.
func (s *Service) StageBulkUpdate(status OrderStatus) (*PendingMutation, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", httpx.ErrInvalidInput, status)
	}
	staged, err := s.bulk.stage(status)
	if err != nil {
		s.notify("No order selected")
		return nil, err
	}
	return staged, nil
}

// ConfirmBulkUpdate applies the staged mutation to the store in one atomic
// swap, clears the selection, and queues gateway persistence.
func (s *Service) ConfirmBulkUpdate(ctx context.Context) (*PendingMutation, error) {
	staged, err := s.bulk.confirm()
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]struct{}, len(staged.IDs))
	for _, id := range staged.IDs {
		ids[id] = struct{}{}
	}
	s.store.ApplyStatus(ids, staged.Status)
	s.notify(fmt.Sprintf("Updated to %s", staged.Status))

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueStatusSync(ctx, staged.IDs, string(staged.Status)); err != nil {
			// The local change stands; only durability is delayed.
			s.logger.Error("enqueue status sync failed", "error", err)
			s.notify("Status change saved locally, sync pending")
		}
	}
	return staged, nil
}

// CancelBulkUpdate discards the staged mutation without touching the store
// or the selection set.
func (s *Service) CancelBulkUpdate() {
	s.bulk.cancel()
}

// StagedMutation returns the pending mutation, or nil when idle.
func (s *Service) StagedMutation() *PendingMutation {
	return s.bulk.snapshot()
}

func (s *Service) notify(message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(message)
	s.metrics.ObserveNotification()
}
