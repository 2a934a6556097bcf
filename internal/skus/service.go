package skus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/skudeck/skudeck/internal/notify"
	"github.com/skudeck/skudeck/internal/observability"
	"github.com/skudeck/skudeck/internal/platform/httpx"
)

// Gateway is the slice of the remote data gateway the SKU workflow consumes.
type Gateway interface {
	ListSKUs(ctx context.Context) ([]SKU, error)
	CreateSKU(ctx context.Context, sku SKU) (*SKU, error)
	UpdateSKU(ctx context.Context, id int64, sku SKU) (*SKU, error)
	PatchSKU(ctx context.Context, id int64, fields map[string]any) (*SKU, error)
	DeleteSKU(ctx context.Context, id int64) error
}

type Service struct {
	store    *Store
	gateway  Gateway
	notifier *notify.Notifier
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *slog.Logger

	// Contextual action menu: at most one open at a time, keyed by SKU ID.
	menuMu     sync.Mutex
	openMenuID *int64
}

func NewService(store *Store, gateway Gateway, notifier *notify.Notifier, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Refresh rebuilds the store from the gateway.
func (s *Service) Refresh(ctx context.Context) error {
	fetched, err := s.gateway.ListSKUs(ctx)
	s.metrics.ObserveGatewayCall("skus.list", err)
	if err != nil {
		s.notify("Failed to load SKUs")
		return fmt.Errorf("refresh skus: %w", err)
	}
	s.store.Replace(fetched)
	return nil
}

// List derives the visible SKU set from the current snapshot.
func (s *Service) List(req ListSKUsRequest) []SKU {
	filter := req.Status
	if filter == "" {
		filter = StatusFilterAll
	}
	return Derive(s.store.Snapshot(), filter, req.Search)
}

// Create validates the form, persists the SKU via the gateway, and appends
// the returned entity (carrying the assigned ID) to the store.
func (s *Service) Create(ctx context.Context, req CreateSKURequest) (*SKU, error) {
	if err := s.validate.Struct(req); err != nil {
		s.notify("Invalid input")
		return nil, fmt.Errorf("%w: %v", httpx.ErrInvalidInput, err)
	}

	created, err := s.gateway.CreateSKU(ctx, SKU{
		Name:   req.Name,
		Code:   req.Code,
		Price:  req.Price,
		Active: true,
	})
	s.metrics.ObserveGatewayCall("skus.create", err)
	if err != nil {
		s.logger.Error("create sku failed", "error", err)
		s.notify("Failed to add SKU")
		return nil, err
	}

	s.store.Append(*created)
	s.notify("SKU Added")
	return created, nil
}

// Edit validates the form and replaces the matching entity with the gateway's
// response.
func (s *Service) Edit(ctx context.Context, id int64, req UpdateSKURequest) (*SKU, error) {
	if err := s.validate.Struct(req); err != nil {
		s.notify("Invalid input")
		return nil, fmt.Errorf("%w: %v", httpx.ErrInvalidInput, err)
	}
	if _, ok := s.store.Lookup(id); !ok {
		return nil, fmt.Errorf("%w: sku %d", httpx.ErrNotFound, id)
	}

	updated, err := s.gateway.UpdateSKU(ctx, id, SKU{
		ID:     id,
		Name:   req.Name,
		Code:   req.Code,
		Price:  req.Price,
		Active: req.Active,
	})
	s.metrics.ObserveGatewayCall("skus.update", err)
	if err != nil {
		s.logger.Error("update sku failed", "error", err, "id", id)
		s.notify("Failed to update SKU")
		return nil, err
	}

	s.store.Update(*updated)
	s.closeMenuFor(id)
	s.notify("SKU Updated")
	return updated, nil
}

// Delete removes the entity locally only after the gateway confirms deletion.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, ok := s.store.Lookup(id); !ok {
		return fmt.Errorf("%w: sku %d", httpx.ErrNotFound, id)
	}

	err := s.gateway.DeleteSKU(ctx, id)
	s.metrics.ObserveGatewayCall("skus.delete", err)
	if err != nil {
		s.logger.Error("delete sku failed", "error", err, "id", id)
		s.notify("Failed to delete SKU")
		return err
	}

	s.store.Remove(id)
	s.closeMenuFor(id)
	s.notify("SKU Deleted")
	return nil
}

// ToggleActive sends the inverted flag to the gateway and replaces the local
// entity with the response.
func (s *Service) ToggleActive(ctx context.Context, id int64) (*SKU, error) {
	current, ok := s.store.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: sku %d", httpx.ErrNotFound, id)
	}

	updated, err := s.gateway.PatchSKU(ctx, id, map[string]any{"active": !current.Active})
	s.metrics.ObserveGatewayCall("skus.patch", err)
	if err != nil {
		s.logger.Error("toggle sku failed", "error", err, "id", id)
		s.notify("Failed to update SKU")
		return nil, err
	}

	s.store.Update(*updated)
	s.notify("SKU Updated")
	return updated, nil
}

// OpenMenu opens the action menu for the given SKU, closing any other.
func (s *Service) OpenMenu(id int64) {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()
	s.openMenuID = &id
}

// CloseMenu closes any open action menu.
func (s *Service) CloseMenu() {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()
	s.openMenuID = nil
}

// OpenMenuID returns the ID of the SKU whose menu is open, if any.
func (s *Service) OpenMenuID() *int64 {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()
	if s.openMenuID == nil {
		return nil
	}
	id := *s.openMenuID
	return &id
}

func (s *Service) closeMenuFor(id int64) {
	s.menuMu.Lock()
	defer s.menuMu.Unlock()
	if s.openMenuID != nil && *s.openMenuID == id {
		s.openMenuID = nil
	}
}

func (s *Service) notify(message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(message)
	s.metrics.ObserveNotification()
}
