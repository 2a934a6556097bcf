package orders

import "sync"

// Store is the in-memory order snapshot. Bulk status changes are applied as a
// single swap of the whole collection, so readers never observe a partially
// applied mutation.
type Store struct {
	mu        sync.RWMutex
	orders    []Order
	lastToken uint64
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

func cloneOrders(input []Order) []Order {
	out := make([]Order, len(input))
	for i, order := range input {
		out[i] = order
		out[i].Items = append([]OrderItem(nil), order.Items...)
	}
	return out
}

// Snapshot returns a copy of the current collection in fetch order.
func (s *Store) Snapshot() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders)
}

// ReplaceIfNewer swaps the collection when token is newer than the last
// applied refresh. A stale response (token at or below the applied one) is
// discarded, which keeps rapid repeated refreshes from racing each other.
func (s *Store) ReplaceIfNewer(orders []Order, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.lastToken {
		return false
	}
	s.lastToken = token
	s.orders = cloneOrders(orders)
	return true
}

// Append adds a gateway-returned entity to the end of the collection.
func (s *Store) Append(order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
}

// Get returns the entity with the given ID.
func (s *Store) Get(id int64) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			order.Items = append([]OrderItem(nil), order.Items...)
			return order, true
		}
	}
	return Order{}, false
}

// ApplyStatus sets status on every order whose ID is in ids, replacing the
// collection in one swap. It returns how many orders changed.
func (s *Store) ApplyStatus(ids map[int64]struct{}, status OrderStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneOrders(s.orders)
	changed := 0
	for i := range next {
		if _, ok := ids[next[i].ID]; ok {
			next[i].Status = status
			changed++
		}
	}
	s.orders = next
	return changed
}

// Len reports the number of entities held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
