package catalog

import (
	"context"

	"github.com/azorix/solarstore/internal/domain"
)

// Service exposes the product and offer catalog.
type Service interface {
	// ListProducts returns all products, newest first.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct retrieves a product by ID. Returns a domain ENOTFOUND
	// error when no such product exists.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// ListOffers returns all active offers.
	ListOffers(ctx context.Context) ([]domain.OfferDetail, error)

	// GetOffer retrieves an offer by ID. Returns a domain ENOTFOUND
	// error when no such offer exists.
	GetOffer(ctx context.Context, id string) (*domain.OfferDetail, error)
}
