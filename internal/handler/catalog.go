package handler

import (
	"net/http"

	"github.com/azorix/solarstore/internal/catalog"
	"github.com/azorix/solarstore/internal/domain"
)

// CatalogHandler exposes products and offers over the storefront JSON API.
type CatalogHandler struct {
	catalog catalog.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc}
}

type productResponse struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Price  int64    `json:"price"`
	MRP    *int64   `json:"mrp,omitempty"`
	Image  string   `json:"image"`
	Badges []string `json:"badges"`
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

// ListOffers handles GET /api/offers
func (h *CatalogHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.catalog.ListOffers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]*offerResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, toOfferResponse(o))
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetOffer handles GET /api/offers/{id}
func (h *CatalogHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.catalog.GetOffer(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toOfferResponse(*offer))
}

func toProductResponse(p domain.Product) productResponse {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return productResponse{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		MRP:    p.MRP,
		Image:  p.Image,
		Badges: badges,
	}
}
