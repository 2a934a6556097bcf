package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skudeck/skudeck/internal/orders"
)

type fakePatcher struct {
	patched map[int64]map[string]any
	failOn  int64
}

func newFakePatcher() *fakePatcher {
	return &fakePatcher{patched: make(map[int64]map[string]any)}
}

func (f *fakePatcher) PatchOrder(ctx context.Context, id int64, fields map[string]any) (*orders.Order, error) {
	if f.failOn != 0 && id == f.failOn {
		return nil, errors.New("upstream unavailable")
	}
	f.patched[id] = fields
	return &orders.Order{ID: id}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusSyncTask(t *testing.T, ids []int64, status string) *asynq.Task {
	t.Helper()
	task, err := NewStatusSyncTask(StatusSyncPayload{OrderIDs: ids, Status: status})
	require.NoError(t, err)
	return task
}

func TestStatusSyncPatchesEveryOrder(t *testing.T) {
	patcher := newFakePatcher()
	job := NewStatusSyncJob(patcher, testLogger())

	task := statusSyncTask(t, []int64{5, 7, 9}, "Delivered")
	require.NoError(t, job.Handle(context.Background(), task))

	require.Len(t, patcher.patched, 3)
	for _, id := range []int64{5, 7, 9} {
		assert.Equal(t, map[string]any{"status": "Delivered"}, patcher.patched[id])
	}
}

func TestStatusSyncFailureIsRetryable(t *testing.T) {
	patcher := newFakePatcher()
	patcher.failOn = 7
	job := NewStatusSyncJob(patcher, testLogger())

	task := statusSyncTask(t, []int64{5, 7, 9}, "Cancelled")
	err := job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestStatusSyncMalformedPayloadSkipsRetry(t *testing.T) {
	job := NewStatusSyncJob(newFakePatcher(), testLogger())

	task := asynq.NewTask(TaskTypeStatusSync, []byte("{not json"))
	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestStatusSyncTaskPayloadRoundTrip(t *testing.T) {
	task := statusSyncTask(t, []int64{1, 2}, "New")
	assert.Equal(t, TaskTypeStatusSync, task.Type())

	var payload StatusSyncPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, []int64{1, 2}, payload.OrderIDs)
	assert.Equal(t, "New", payload.Status)
}
