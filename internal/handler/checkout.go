package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/azorix/solarstore/internal/checkout"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/order"
	"github.com/azorix/solarstore/internal/telemetry"
)

// CheckoutHandler exposes the order summary and order placement flow.
type CheckoutHandler struct {
	service  *checkout.Service
	metrics  *telemetry.BusinessMetrics
	validate *validator.Validate
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service *checkout.Service, metrics *telemetry.BusinessMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		metrics:  metrics,
		validate: validator.New(),
	}
}

type summaryLineResponse struct {
	ProductID      string `json:"productId"`
	Title          string `json:"title"`
	Quantity       int64  `json:"quantity"`
	UnitPrice      int64  `json:"unitPrice"`
	FinalUnitPrice int64  `json:"finalUnitPrice"`
	LineTotal      int64  `json:"lineTotal"`
	OfferSavings   int64  `json:"offerSavings"`
	MRPSavings     int64  `json:"mrpSavings"`
	OfferTitle     string `json:"offerTitle,omitempty"`
}

type summaryResponse struct {
	Lines          []summaryLineResponse `json:"lines"`
	ItemCount      int64                 `json:"itemCount"`
	Subtotal       int64                 `json:"subtotal"`
	OfferSavings   int64                 `json:"offerSavings"`
	MRPSavings     int64                 `json:"mrpSavings"`
	FinalTotal     int64                 `json:"finalTotal"`
	Shipping       int64                 `json:"shipping"`
	TaxIncluded    int64                 `json:"taxIncluded"`
	CouponCode     string                `json:"couponCode,omitempty"`
	CouponSavings  int64                 `json:"couponSavings"`
	CouponRejected bool                  `json:"couponRejected"`
	GrandTotal     int64                 `json:"grandTotal"`
	TotalSavings   int64                 `json:"totalSavings"`
}

// Summary handles GET /api/checkout/summary?coupon=CODE
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := h.service.Summarize(r.URL.Query().Get("coupon"))

	h.metrics.SummariesComputed.Inc()
	if summary.CouponRejected {
		h.metrics.CouponRejected.Inc()
	} else if summary.CouponCode != "" {
		h.metrics.CouponApplied.WithLabelValues(summary.CouponCode).Inc()
	}

	respondJSON(w, http.StatusOK, toSummaryResponse(summary))
}

type addressRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
}

type placeOrderRequest struct {
	Email      string         `json:"email" validate:"omitempty,email"`
	Address    addressRequest `json:"address" validate:"required"`
	CouponCode string         `json:"couponCode"`
}

type placeOrderResponse struct {
	OrderID      string          `json:"orderId"`
	Status       string          `json:"status"`
	ClientSecret string          `json:"clientSecret,omitempty"`
	Summary      summaryResponse `json:"summary"`
}

// PlaceOrder handles POST /api/checkout/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		respondError(w, r, err)
		return
	}

	placement, err := h.service.PlaceOrder(r.Context(), checkout.PlaceOrderParams{
		Email: req.Email,
		Address: domain.Address{
			Name:    req.Address.Name,
			Phone:   req.Address.Phone,
			Line1:   req.Address.Line1,
			Line2:   req.Address.Line2,
			City:    req.Address.City,
			State:   req.Address.State,
			Pincode: req.Address.Pincode,
		},
		CouponCode: req.CouponCode,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.metrics.OrdersPlaced.WithLabelValues(string(placement.Order.Status)).Inc()
	h.metrics.OrderValue.Observe(float64(placement.Order.GrandTotal))
	h.metrics.OrderItemCount.Observe(float64(placement.Order.ItemCount))
	if placement.Order.PaymentIntentID != "" {
		h.metrics.PaymentIntentsCreated.Inc()
	} else if h.service.PaymentConfigured() {
		h.metrics.PaymentIntentsFailed.Inc()
	}

	respondJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:      placement.Order.ID,
		Status:       string(placement.Order.Status),
		ClientSecret: placement.ClientSecret,
		Summary:      toSummaryResponse(placement.Summary),
	})
}

type orderLineResponse struct {
	ProductID      string `json:"productId"`
	Title          string `json:"title"`
	Quantity       int64  `json:"quantity"`
	UnitPrice      int64  `json:"unitPrice"`
	FinalUnitPrice int64  `json:"finalUnitPrice"`
	LineTotal      int64  `json:"lineTotal"`
	OfferTitle     string `json:"offerTitle,omitempty"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	Email         string              `json:"email,omitempty"`
	Lines         []orderLineResponse `json:"lines"`
	ItemCount     int64               `json:"itemCount"`
	Subtotal      int64               `json:"subtotal"`
	OfferSavings  int64               `json:"offerSavings"`
	MRPSavings    int64               `json:"mrpSavings"`
	Shipping      int64               `json:"shipping"`
	TaxIncluded   int64               `json:"taxIncluded"`
	CouponCode    string              `json:"couponCode,omitempty"`
	CouponSavings int64               `json:"couponSavings"`
	GrandTotal    int64               `json:"grandTotal"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// GetOrder handles GET /api/orders/{id}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := orderResponse{
		ID:            o.ID,
		Status:        string(o.Status),
		Email:         o.Email,
		Lines:         make([]orderLineResponse, 0, len(o.Lines)),
		ItemCount:     o.ItemCount,
		Subtotal:      o.Subtotal,
		OfferSavings:  o.OfferSavings,
		MRPSavings:    o.MRPSavings,
		Shipping:      o.Shipping,
		TaxIncluded:   o.TaxIncluded,
		CouponCode:    o.CouponCode,
		CouponSavings: o.CouponSavings,
		GrandTotal:    o.GrandTotal,
		CreatedAt:     o.CreatedAt,
	}
	for _, line := range o.Lines {
		resp.Lines = append(resp.Lines, toOrderLineResponse(line))
	}

	respondJSON(w, http.StatusOK, resp)
}

func toOrderLineResponse(line order.Line) orderLineResponse {
	return orderLineResponse{
		ProductID:      line.ProductID,
		Title:          line.Title,
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
		FinalUnitPrice: line.FinalUnitPrice,
		LineTotal:      line.LineTotal,
		OfferTitle:     line.OfferTitle,
	}
}

func toSummaryResponse(s checkout.Summary) summaryResponse {
	resp := summaryResponse{
		Lines:          make([]summaryLineResponse, 0, len(s.Lines)),
		ItemCount:      s.ItemCount,
		Subtotal:       s.Subtotal,
		OfferSavings:   s.OfferSavings,
		MRPSavings:     s.MRPSavings,
		FinalTotal:     s.FinalTotal,
		Shipping:       s.Shipping,
		TaxIncluded:    s.TaxIncluded,
		CouponCode:     s.CouponCode,
		CouponSavings:  s.CouponSavings,
		CouponRejected: s.CouponRejected,
		GrandTotal:     s.GrandTotal,
		TotalSavings:   s.TotalSavings,
	}
	for _, line := range s.Lines {
		resp.Lines = append(resp.Lines, summaryLineResponse{
			ProductID:      line.ProductID,
			Title:          line.Title,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			FinalUnitPrice: line.FinalUnitPrice,
			LineTotal:      line.LineTotal,
			OfferSavings:   line.OfferSavings,
			MRPSavings:     line.MRPSavings,
			OfferTitle:     line.OfferTitle,
		})
	}
	return resp
}
