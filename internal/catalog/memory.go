package catalog

import (
	"context"
	"sync"

	"github.com/azorix/solarstore/internal/domain"
)

// MemoryService implements Service from a fixed in-memory catalog, used in
// tests and when running without a database.
type MemoryService struct {
	mu       sync.RWMutex
	products []domain.Product
	offers   []domain.OfferDetail
}

var _ Service = (*MemoryService)(nil)

// NewMemoryService creates an in-memory catalog with the given contents.
func NewMemoryService(products []domain.Product, offers []domain.OfferDetail) *MemoryService {
	return &MemoryService{products: products, offers: offers}
}

// ListProducts returns the catalog's products.
func (s *MemoryService) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...), nil
}

// GetProduct retrieves a product by ID.
func (s *MemoryService) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domain.NotFound("catalog.get_product", "product", id)
}

// ListOffers returns the catalog's offers.
func (s *MemoryService) ListOffers(_ context.Context) ([]domain.OfferDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OfferDetail(nil), s.offers...), nil
}

// GetOffer retrieves an offer by ID.
func (s *MemoryService) GetOffer(_ context.Context, id string) (*domain.OfferDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.offers {
		if o.ID == id {
			offer := o
			return &offer, nil
		}
	}
	return nil, domain.NotFound("catalog.get_offer", "offer", id)
}
