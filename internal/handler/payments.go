package handler

import (
	"net/http"

	"github.com/azorix/solarstore/internal/checkout"
)

// PaymentsHandler exposes payment gateway configuration to the storefront.
type PaymentsHandler struct {
	service *checkout.Service
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(service *checkout.Service) *PaymentsHandler {
	return &PaymentsHandler{service: service}
}

// Config handles GET /api/payments/config. The storefront uses it to
// decide whether to render the online payment option.
func (h *PaymentsHandler) Config(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{
		"configured": h.service.PaymentConfigured(),
	})
}
