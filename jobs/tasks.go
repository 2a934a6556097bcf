package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeStatusSync persists a confirmed bulk status change to the gateway.
	TaskTypeStatusSync = "orders:status_sync"
)

// StatusSyncPayload carries the orders affected by a confirmed bulk update.
type StatusSyncPayload struct {
	OrderIDs []int64 `json:"order_ids"`
	Status   string  `json:"status"`
}

// NewStatusSyncTask constructs an Asynq task.
func NewStatusSyncTask(payload StatusSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeStatusSync, data), nil
}
