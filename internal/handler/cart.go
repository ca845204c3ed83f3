package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/azorix/solarstore/internal/cart"
	"github.com/azorix/solarstore/internal/catalog"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/telemetry"
)

// CartHandler exposes the cart over the storefront JSON API.
type CartHandler struct {
	cart     *cart.Store
	catalog  catalog.Service
	metrics  *telemetry.BusinessMetrics
	validate *validator.Validate
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartStore *cart.Store, catalogSvc catalog.Service, metrics *telemetry.BusinessMetrics) *CartHandler {
	return &CartHandler{
		cart:     cartStore,
		catalog:  catalogSvc,
		metrics:  metrics,
		validate: validator.New(),
	}
}

type cartItemResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Price    int64          `json:"price"`
	MRP      *int64         `json:"mrp,omitempty"`
	Image    string         `json:"image,omitempty"`
	Quantity int64          `json:"quantity"`
	Offer    *offerResponse `json:"offer,omitempty"`
}

type offerResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	CouponCode    string  `json:"couponCode,omitempty"`
	Description   string  `json:"description,omitempty"`
	Terms         string  `json:"terms,omitempty"`
	Badge         string  `json:"badge,omitempty"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Count int64              `json:"count"`
	Total int64              `json:"total"`
}

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartView())
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"omitempty,min=1"`
	OfferID   string `json:"offerId"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var offer *domain.OfferDetail
	if req.OfferID != "" {
		offer, err = h.catalog.GetOffer(r.Context(), req.OfferID)
		if err != nil {
			respondError(w, r, err)
			return
		}
	}

	h.cart.Add(domain.CartItem{
		ID:    product.ID,
		Title: product.Title,
		Price: product.Price,
		MRP:   product.MRP,
		Image: product.Image,
		Offer: offer,
	}, req.Quantity)

	h.metrics.CartItemsAdded.WithLabelValues(product.ID).Inc()

	respondJSON(w, http.StatusOK, h.cartView())
}

type updateItemRequest struct {
	Quantity int64 `json:"quantity" validate:"min=0"`
}

// UpdateItem handles PUT /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateItemRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		respondError(w, r, err)
		return
	}

	h.cart.Update(id, req.Quantity)

	respondJSON(w, http.StatusOK, h.cartView())
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.PathValue("id"))
	h.metrics.CartItemsRemoved.Inc()

	respondJSON(w, http.StatusOK, h.cartView())
}

type applyOfferRequest struct {
	OfferID string `json:"offerId"`
}

// ApplyOffer handles PUT /api/cart/items/{id}/offer.
// An empty offerId clears the line's offer.
func (h *CartHandler) ApplyOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req applyOfferRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var offer *domain.OfferDetail
	if req.OfferID != "" {
		found, err := h.catalog.GetOffer(r.Context(), req.OfferID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		offer = found
	}

	h.cart.ApplyOffer(id, offer)

	respondJSON(w, http.StatusOK, h.cartView())
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	h.metrics.CartCleared.Inc()

	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) cartView() cartResponse {
	items := h.cart.Items()
	resp := cartResponse{
		Items: make([]cartItemResponse, 0, len(items)),
		Count: h.cart.Count(),
		Total: h.cart.Total(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toCartItemResponse(item))
	}
	return resp
}

func toCartItemResponse(item domain.CartItem) cartItemResponse {
	resp := cartItemResponse{
		ID:       item.ID,
		Title:    item.Title,
		Price:    item.Price,
		MRP:      item.MRP,
		Image:    item.Image,
		Quantity: item.Quantity,
	}
	if item.Offer != nil {
		resp.Offer = toOfferResponse(*item.Offer)
	}
	return resp
}

func toOfferResponse(offer domain.OfferDetail) *offerResponse {
	return &offerResponse{
		ID:            offer.ID,
		Title:         offer.Title,
		DiscountType:  string(offer.DiscountType),
		DiscountValue: offer.DiscountValue,
		CouponCode:    offer.CouponCode,
		Description:   offer.Description,
		Terms:         offer.Terms,
		Badge:         offer.Badge,
	}
}
