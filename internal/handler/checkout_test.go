package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/azorix/solarstore/internal/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryJSON struct {
	ItemCount      int64  `json:"itemCount"`
	Subtotal       int64  `json:"subtotal"`
	OfferSavings   int64  `json:"offerSavings"`
	MRPSavings     int64  `json:"mrpSavings"`
	FinalTotal     int64  `json:"finalTotal"`
	Shipping       int64  `json:"shipping"`
	TaxIncluded    int64  `json:"taxIncluded"`
	CouponCode     string `json:"couponCode"`
	CouponSavings  int64  `json:"couponSavings"`
	CouponRejected bool   `json:"couponRejected"`
	GrandTotal     int64  `json:"grandTotal"`
	TotalSavings   int64  `json:"totalSavings"`
}

type placeOrderJSON struct {
	OrderID      string      `json:"orderId"`
	Status       string      `json:"status"`
	ClientSecret string      `json:"clientSecret"`
	Summary      summaryJSON `json:"summary"`
}

func validOrderBody() map[string]any {
	return map[string]any{
		"email": "asha@example.com",
		"address": map[string]any{
			"name":    "Asha Rao",
			"phone":   "9800000000",
			"line1":   "14 MG Road",
			"city":    "Bengaluru",
			"state":   "Karnataka",
			"pincode": "560001",
		},
	}
}

func TestCheckout_Summary(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items",
		map[string]any{"productId": "panel-540", "offerId": "launch-10"}, nil)

	var resp summaryJSON
	w := srv.do(t, http.MethodGet, "/api/checkout/summary", nil, &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(100000), resp.Subtotal)
	assert.Equal(t, int64(10000), resp.OfferSavings)
	assert.Equal(t, int64(15000), resp.MRPSavings)
	assert.Equal(t, int64(90000), resp.FinalTotal)
	assert.Equal(t, int64(0), resp.Shipping)
	assert.Equal(t, int64(16200), resp.TaxIncluded)
	assert.Equal(t, int64(90000), resp.GrandTotal)
}

func TestCheckout_SummaryWithCoupon(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	var resp summaryJSON
	srv.do(t, http.MethodGet, "/api/checkout/summary?coupon=solar5", nil, &resp)

	assert.Equal(t, "SOLAR5", resp.CouponCode)
	assert.Equal(t, int64(5000), resp.CouponSavings)
	assert.Equal(t, int64(95000), resp.GrandTotal)
	assert.False(t, resp.CouponRejected)
}

func TestCheckout_SummaryRejectsUnknownCoupon(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	var resp summaryJSON
	srv.do(t, http.MethodGet, "/api/checkout/summary?coupon=WINTER20", nil, &resp)

	assert.True(t, resp.CouponRejected)
	assert.Equal(t, int64(0), resp.CouponSavings)
	assert.Equal(t, int64(100000), resp.GrandTotal)
}

func TestCheckout_SummaryShippingBelowThreshold(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "cable-kit"}, nil)

	var resp summaryJSON
	srv.do(t, http.MethodGet, "/api/checkout/summary", nil, &resp)

	assert.Equal(t, int64(999), resp.Shipping)
	assert.Equal(t, int64(3499), resp.GrandTotal)
}

func TestCheckout_PlaceOrder(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	var resp placeOrderJSON
	w := srv.do(t, http.MethodPost, "/api/checkout/orders", validOrderBody(), &resp)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "placed", resp.Status)
	assert.Empty(t, resp.ClientSecret)
	assert.Equal(t, int64(100000), resp.Summary.GrandTotal)

	// The cart is emptied after placement.
	var cartResp cartJSON
	srv.do(t, http.MethodGet, "/api/cart", nil, &cartResp)
	assert.Empty(t, cartResp.Items)
}

func TestCheckout_PlaceOrderWithGateway(t *testing.T) {
	srv := newTestServer(t, billing.NewMockProvider())
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	var resp placeOrderJSON
	w := srv.do(t, http.MethodPost, "/api/checkout/orders", validOrderBody(), &resp)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pending_payment", resp.Status)
	assert.NotEmpty(t, resp.ClientSecret)
}

func TestCheckout_PlaceOrderEmptyCart(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/checkout/orders", validOrderBody(), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_PlaceOrderMissingAddress(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	body := validOrderBody()
	delete(body, "address")
	w := srv.do(t, http.MethodPost, "/api/checkout/orders", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_PlaceOrderBadPincode(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	body := validOrderBody()
	body["address"].(map[string]any)["pincode"] = "12ab"
	w := srv.do(t, http.MethodPost, "/api/checkout/orders", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_GetOrder(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540", "quantity": 2}, nil)

	var placed placeOrderJSON
	srv.do(t, http.MethodPost, "/api/checkout/orders", validOrderBody(), &placed)

	var fetched struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		GrandTotal int64  `json:"grandTotal"`
		Lines      []struct {
			ProductID string `json:"productId"`
			Quantity  int64  `json:"quantity"`
		} `json:"lines"`
	}
	w := srv.do(t, http.MethodGet, "/api/orders/"+placed.OrderID, nil, &fetched)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, placed.OrderID, fetched.ID)
	assert.Equal(t, int64(200000), fetched.GrandTotal)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, "panel-540", fetched.Lines[0].ProductID)
	assert.Equal(t, int64(2), fetched.Lines[0].Quantity)
}

func TestCheckout_GetOrderReflectsConfirmedPayment(t *testing.T) {
	srv := newTestServer(t, billing.NewMockProvider())
	srv.do(t, http.MethodPost, "/api/cart/items", map[string]any{"productId": "panel-540"}, nil)

	var placed placeOrderJSON
	srv.do(t, http.MethodPost, "/api/checkout/orders", validOrderBody(), &placed)
	require.Equal(t, "pending_payment", placed.Status)

	stored, err := srv.orders.Get(context.Background(), placed.OrderID)
	require.NoError(t, err)
	require.NoError(t, srv.provider.SimulateSucceededPayment(stored.PaymentIntentID))

	var fetched struct {
		Status string `json:"status"`
	}
	w := srv.do(t, http.MethodGet, "/api/orders/"+placed.OrderID, nil, &fetched)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", fetched.Status)
}

func TestCheckout_GetOrderNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/orders/unknown", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayments_Config(t *testing.T) {
	var resp struct {
		Configured bool `json:"configured"`
	}

	srv := newTestServer(t, billing.NewMockProvider())
	srv.do(t, http.MethodGet, "/api/payments/config", nil, &resp)
	assert.True(t, resp.Configured)

	srv = newTestServer(t, nil)
	srv.do(t, http.MethodGet, "/api/payments/config", nil, &resp)
	assert.False(t, resp.Configured)
}

func TestCatalog_ListAndGet(t *testing.T) {
	srv := newTestServer(t, nil)

	var products []struct {
		ID     string   `json:"id"`
		Badges []string `json:"badges"`
	}
	w := srv.do(t, http.MethodGet, "/api/products", nil, &products)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, products, 2)

	var product struct {
		ID    string `json:"id"`
		Price int64  `json:"price"`
	}
	w = srv.do(t, http.MethodGet, "/api/products/panel-540", nil, &product)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(100000), product.Price)

	w = srv.do(t, http.MethodGet, "/api/products/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
