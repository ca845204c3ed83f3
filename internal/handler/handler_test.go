package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/azorix/solarstore/internal/billing"
	"github.com/azorix/solarstore/internal/cart"
	"github.com/azorix/solarstore/internal/catalog"
	"github.com/azorix/solarstore/internal/checkout"
	"github.com/azorix/solarstore/internal/coupon"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/events"
	"github.com/azorix/solarstore/internal/handler"
	"github.com/azorix/solarstore/internal/order"
	"github.com/azorix/solarstore/internal/routes"
	"github.com/azorix/solarstore/internal/router"
	"github.com/azorix/solarstore/internal/shipping"
	"github.com/azorix/solarstore/internal/storage"
	"github.com/azorix/solarstore/internal/tax"
	"github.com/azorix/solarstore/internal/telemetry"
)

type testServer struct {
	router   *router.Router
	cart     *cart.Store
	orders   *order.MemoryStore
	provider *billing.MockProvider
}

func int64Ptr(v int64) *int64 { return &v }

func seedCatalog() catalog.Service {
	products := []domain.Product{
		{ID: "panel-540", Title: "540W Mono PERC Panel", Price: 100000, MRP: int64Ptr(115000), Image: "https://cdn.example.com/panel.jpg"},
		{ID: "cable-kit", Title: "DC Cable Kit", Price: 2500},
	}
	offers := []domain.OfferDetail{
		{ID: "launch-10", Title: "Launch Offer", DiscountType: domain.DiscountPercentage, DiscountValue: 10},
		{ID: "flat-5000", Title: "Flat 5000 Off", DiscountType: domain.DiscountFlat, DiscountValue: 5000},
	}
	return catalog.NewMemoryService(products, offers)
}

// newTestServer wires the full API with in-memory backends. provider may
// be nil to simulate an unconfigured gateway.
func newTestServer(t *testing.T, provider billing.Provider) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())

	catalogSvc := seedCatalog()
	cartStore := cart.NewStore(cart.NewKVPort(storage.NewMemory(), cart.StorageKey), logger)
	orders := order.NewMemoryStore()

	calculator := checkout.NewCalculator(
		shipping.NewThresholdQuoter(75000, 999),
		tax.NewIncludedRateCalculator(0.18),
		coupon.NewDefaultRegistry(),
	)
	checkoutSvc := checkout.NewService(cartStore, calculator, provider, orders, events.NewNoopPublisher(), logger)

	r := router.New()
	routes.Register(r, routes.Deps{
		CartHandler:     handler.NewCartHandler(cartStore, catalogSvc, metrics),
		CatalogHandler:  handler.NewCatalogHandler(catalogSvc),
		CheckoutHandler: handler.NewCheckoutHandler(checkoutSvc, metrics),
		PaymentsHandler: handler.NewPaymentsHandler(checkoutSvc),
	})

	mock, _ := provider.(*billing.MockProvider)
	return &testServer{router: r, cart: cartStore, orders: orders, provider: mock}
}

// do performs a request and decodes the JSON response body into out (when
// out is non-nil).
func (s *testServer) do(t *testing.T, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}

	return w
}
