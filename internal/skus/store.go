package skus

import "sync"

// Store is the in-memory SKU snapshot held for the lifetime of the process.
// All durable state lives behind the gateway; the store is rebuilt on refresh.
type Store struct {
	mu   sync.RWMutex
	skus []SKU
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current collection in fetch order.
func (s *Store) Snapshot() []SKU {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SKU, len(s.skus))
	copy(out, s.skus)
	return out
}

// Replace swaps the whole collection.
func (s *Store) Replace(skus []SKU) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skus = append([]SKU(nil), skus...)
}

// Append adds a gateway-returned entity to the end of the collection.
func (s *Store) Append(sku SKU) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skus = append(s.skus, sku)
}

// Update replaces the entity with a matching ID, keeping its position.
func (s *Store) Update(sku SKU) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skus {
		if s.skus[i].ID == sku.ID {
			s.skus[i] = sku
			return true
		}
	}
	return false
}

// Remove drops the entity with the given ID.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skus {
		if s.skus[i].ID == id {
			s.skus = append(s.skus[:i], s.skus[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup returns the entity with the given ID.
func (s *Store) Lookup(id int64) (SKU, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.skus {
		if s.skus[i].ID == id {
			return s.skus[i], true
		}
	}
	return SKU{}, false
}

// Len reports the number of entities held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.skus)
}
