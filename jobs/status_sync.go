package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/skudeck/skudeck/internal/orders"
)

// OrderPatcher is the gateway operation needed to persist a status change.
type OrderPatcher interface {
	PatchOrder(ctx context.Context, id int64, fields map[string]any) (*orders.Order, error)
}

// StatusSyncJob replays a locally confirmed bulk update against the gateway,
// one PATCH per affected order. A failed order fails the task so Asynq
// retries it; already patched orders are idempotent under replay because the
// PATCH body only carries the target status.
type StatusSyncJob struct {
	gateway OrderPatcher
	logger  *slog.Logger
}

// NewStatusSyncJob constructs the handler.
func NewStatusSyncJob(gateway OrderPatcher, logger *slog.Logger) *StatusSyncJob {
	return &StatusSyncJob{gateway: gateway, logger: logger}
}

// Handle processes TaskTypeStatusSync tasks.
func (j *StatusSyncJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload StatusSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	for _, id := range payload.OrderIDs {
		if _, err := j.gateway.PatchOrder(ctx, id, map[string]any{"status": payload.Status}); err != nil {
			j.logger.Error("status sync patch failed", "error", err, "order_id", id)
			return err
		}
	}
	j.logger.Info("status sync applied", "orders", len(payload.OrderIDs), "status", payload.Status)
	return nil
}
