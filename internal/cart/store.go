package cart

import (
	"log/slog"
	"sync"

	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/pricing"
)

// Port abstracts the persistence of the cart line items so the store is
// testable without a real storage backend. Load returns the last saved
// items; Save replaces them with the given snapshot.
type Port interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
}

// Store is the single authoritative collection of cart line items.
// Lines are keyed by product ID: adding a product already in the cart
// increments its quantity instead of duplicating the line. Every mutation
// persists the full item list through the port; derived aggregates (count,
// total) are recomputed from the current lines on every read, never cached.
//
// Mutations with absent targets are no-ops, not errors, and persistence
// failures never fail a mutation: cart state corruption must never block
// checkout.
type Store struct {
	mu     sync.Mutex
	items  []domain.CartItem
	port   Port
	logger *slog.Logger
}

// NewStore creates a Store rehydrated from the port. Malformed or
// unreadable persisted state falls back to an empty cart.
func NewStore(port Port, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	items, err := port.Load()
	if err != nil {
		logger.Warn("discarding unreadable cart state", "error", err)
		items = nil
	}

	return &Store{
		items:  items,
		port:   port,
		logger: logger,
	}
}

// Add puts qty units of the item into the cart. The item's own Quantity
// field is ignored. If a line with the same product ID exists, its quantity
// is incremented and the incoming price, image, MRP and offer overlay the
// stored ones when provided; the stored title is kept. A qty <= 0 is a
// no-op.
func (s *Store) Add(item domain.CartItem, qty int64) {
	if qty <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != item.ID {
			continue
		}

		s.items[i].Quantity += qty
		s.items[i].Price = item.Price
		if item.Image != "" {
			s.items[i].Image = item.Image
		}
		if item.MRP != nil {
			s.items[i].MRP = item.MRP
		}
		if item.Offer != nil {
			s.items[i].Offer = item.Offer
		}
		s.persistLocked()
		return
	}

	line := item.Clone()
	line.Quantity = qty
	s.items = append(s.items, line)
	s.persistLocked()
}

// Remove deletes the line with the given product ID. Absent IDs are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Update sets the quantity of the line with the given product ID.
// A qty <= 0 removes the line. Absent IDs are a no-op.
func (s *Store) Update(id string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		if qty <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = qty
		}
		s.persistLocked()
		return
	}
}

// ApplyOffer replaces the offer on the line with the given product ID;
// nil clears it. Absent IDs are a no-op.
func (s *Store) ApplyOffer(id string, offer *domain.OfferDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		s.items[i].Offer = offer
		s.persistLocked()
		return
	}
}

// Clear empties the cart. Called after successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked()
}

// Items returns a snapshot copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Count returns the total quantity across all lines.
func (s *Store) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total returns the sum of offer-discounted line totals. It always
// reflects each line's offer pricing, never the raw price.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += pricing.LineTotal(item)
	}
	return total
}

// persistLocked saves the full item list through the port. The caller must
// hold the mutex. Save failures are logged and swallowed: storage is a
// reload-survival mechanism, not a transaction log.
func (s *Store) persistLocked() {
	if err := s.port.Save(s.items); err != nil {
		s.logger.Warn("failed to persist cart", "error", err, "items", len(s.items))
	}
}
