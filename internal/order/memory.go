package order

import (
	"context"
	"sync"

	"github.com/azorix/solarstore/internal/domain"
)

// MemoryStore implements Store in memory, used in tests and when running
// without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory order store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*Order)}
}

// Create stores a copy of the order.
func (s *MemoryStore) Create(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *o
	stored.Lines = append([]Line(nil), o.Lines...)
	s.orders[o.ID] = &stored
	return nil
}

// Get retrieves a copy of the order.
func (s *MemoryStore) Get(_ context.Context, id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, domain.NotFound("order.get", "order", id)
	}

	o := *stored
	o.Lines = append([]Line(nil), stored.Lines...)
	return &o, nil
}

// UpdateStatus transitions an order's status.
func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return domain.NotFound("order.update_status", "order", id)
	}
	stored.Status = status
	return nil
}
