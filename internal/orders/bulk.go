package orders

import (
	"fmt"
	"sort"
	"sync"

	"github.com/skudeck/skudeck/internal/platform/httpx"
)

// PendingMutation is a staged bulk status change awaiting confirmation.
type PendingMutation struct {
	Status OrderStatus `json:"status"`
	IDs    []int64     `json:"ids"`
}

// bulkState tracks the selection set and the staged mutation. The workflow
// has two states: idle (staged == nil) and staged.
type bulkState struct {
	mu       sync.Mutex
	selected map[int64]struct{}
	staged   *PendingMutation
}

func newBulkState() *bulkState {
	return &bulkState{selected: make(map[int64]struct{})}
}

// toggle flips membership of id in the selection set and reports whether the
// order is now selected.
func (b *bulkState) toggle(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.selected[id]; ok {
		delete(b.selected, id)
		return false
	}
	b.selected[id] = struct{}{}
	return true
}

func (b *bulkState) selectedIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedIDsLocked()
}

func (b *bulkState) selectedIDsLocked() []int64 {
	ids := make([]int64, 0, len(b.selected))
	for id := range b.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// stage snapshots the current selection against a target status. An empty
// selection is rejected without touching any state.
func (b *bulkState) stage(status OrderStatus) (*PendingMutation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.selected) == 0 {
		return nil, fmt.Errorf("%w: bulk update requires at least one order", httpx.ErrEmptySelection)
	}
	b.staged = &PendingMutation{Status: status, IDs: b.selectedIDsLocked()}
	return b.snapshotLocked(), nil
}

// confirm returns the staged mutation, clears the selection set, and resets
// the workflow to idle. The caller applies the change to the store.
func (b *bulkState) confirm() (*PendingMutation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.staged == nil {
		return nil, fmt.Errorf("%w: no staged bulk update", httpx.ErrNotFound)
	}
	staged := b.staged
	b.staged = nil
	b.selected = make(map[int64]struct{})
	return staged, nil
}

// cancel discards the staged mutation; selection and store are untouched.
func (b *bulkState) cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staged = nil
}

// snapshot returns a copy of the staged mutation, or nil when idle.
func (b *bulkState) snapshot() *PendingMutation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *bulkState) snapshotLocked() *PendingMutation {
	if b.staged == nil {
		return nil
	}
	return &PendingMutation{
		Status: b.staged.Status,
		IDs:    append([]int64(nil), b.staged.IDs...),
	}
}
