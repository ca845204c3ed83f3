package checkout_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/azorix/solarstore/internal/billing"
	"github.com/azorix/solarstore/internal/cart"
	"github.com/azorix/solarstore/internal/checkout"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/events"
	"github.com/azorix/solarstore/internal/order"
	"github.com/azorix/solarstore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	published []events.OrderPlaced
	err       error
}

func (p *capturingPublisher) PublishOrderPlaced(_ context.Context, event events.OrderPlaced) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *capturingPublisher) Close() {}

type fixture struct {
	cart      *cart.Store
	orders    *order.MemoryStore
	publisher *capturingPublisher
}

func newService(t *testing.T, provider billing.Provider) (*checkout.Service, *fixture) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		cart:      cart.NewStore(cart.NewKVPort(storage.NewMemory(), cart.StorageKey), logger),
		orders:    order.NewMemoryStore(),
		publisher: &capturingPublisher{},
	}

	svc := checkout.NewService(
		f.cart,
		newCalculator(),
		provider,
		f.orders,
		f.publisher,
		logger,
	)
	return svc, f
}

func testAddress() domain.Address {
	return domain.Address{
		Name:    "Asha Rao",
		Phone:   "9800000000",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestPlaceOrder_WithoutGateway(t *testing.T) {
	svc, f := newService(t, nil)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{
		Email:   "asha@example.com",
		Address: testAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, placement.Order.Status)
	assert.Equal(t, "none", placement.Order.PaymentProvider)
	assert.Empty(t, placement.ClientSecret)
	assert.Equal(t, int64(100000), placement.Order.GrandTotal)

	stored, err := f.orders.Get(context.Background(), placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, placement.Order.GrandTotal, stored.GrandTotal)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "panel-540", stored.Lines[0].ProductID)

	assert.Empty(t, f.cart.Items(), "cart is emptied after placing the order")
}

func TestPlaceOrder_WithGatewayCreatesIntent(t *testing.T) {
	provider := billing.NewMockProvider()
	svc, f := newService(t, provider)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{
		Email:   "asha@example.com",
		Address: testAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, order.StatusPendingPayment, placement.Order.Status)
	assert.Equal(t, "stripe", placement.Order.PaymentProvider)
	assert.NotEmpty(t, placement.Order.PaymentIntentID)
	assert.NotEmpty(t, placement.ClientSecret)

	pi := provider.PaymentIntents[placement.Order.PaymentIntentID]
	require.NotNil(t, pi)
	assert.Equal(t, int64(10000000), pi.AmountPaise, "100000 rupees charged as paise")
}

func TestPlaceOrder_GatewayFailureFallsBackToLocalOrder(t *testing.T) {
	provider := billing.NewMockProvider()
	provider.CreatePaymentIntentFunc = func(context.Context, billing.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
		return nil, errors.New("gateway unreachable")
	}
	svc, f := newService(t, provider)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})

	require.NoError(t, err, "gateway outage must not fail the checkout")
	assert.Equal(t, order.StatusPlaced, placement.Order.Status)
	assert.Equal(t, "none", placement.Order.PaymentProvider)
	assert.Empty(t, placement.ClientSecret)
}

func TestPlaceOrder_RejectedCouponFailsPlacement(t *testing.T) {
	svc, f := newService(t, nil)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	_, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{
		Address:    testAddress(),
		CouponCode: "WINTER20",
	})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.NotEmpty(t, f.cart.Items(), "cart is kept when placement fails")
}

func TestPlaceOrder_CouponAppliedToOrder(t *testing.T) {
	svc, f := newService(t, nil)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{
		Address:    testAddress(),
		CouponCode: "solar5",
	})

	require.NoError(t, err)
	assert.Equal(t, "SOLAR5", placement.Order.CouponCode)
	assert.Equal(t, int64(5000), placement.Order.CouponSavings)
	assert.Equal(t, int64(95000), placement.Order.GrandTotal)
}

func TestPlaceOrder_PublishesEvent(t *testing.T) {
	svc, f := newService(t, nil)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 2)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})

	require.NoError(t, err)
	require.Len(t, f.publisher.published, 1)
	event := f.publisher.published[0]
	assert.Equal(t, placement.Order.ID, event.OrderID)
	assert.Equal(t, int64(2), event.ItemCount)
	assert.Equal(t, placement.Order.GrandTotal, event.GrandTotal)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	svc, f := newService(t, nil)
	f.publisher.err = errors.New("broker down")
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})

	require.NoError(t, err)
	_, err = f.orders.Get(context.Background(), placement.Order.ID)
	assert.NoError(t, err, "order is persisted even when the event cannot be published")
}

func TestPlaceOrder_ZeroTotalChargesMinimumPaise(t *testing.T) {
	provider := billing.NewMockProvider()
	svc, f := newService(t, provider)
	f.cart.Add(domain.CartItem{
		ID:    "freebie",
		Title: "Freebie",
		Price: 0,
	}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})

	require.NoError(t, err)
	pi := provider.PaymentIntents[placement.Order.PaymentIntentID]
	require.NotNil(t, pi)
	assert.Equal(t, int64(1), pi.AmountPaise)
}

func placePendingOrder(t *testing.T, svc *checkout.Service, f *fixture) *checkout.Placement {
	t.Helper()

	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)
	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})
	require.NoError(t, err)
	require.Equal(t, order.StatusPendingPayment, placement.Order.Status)
	return placement
}

func TestGetOrder_ReconcilesSucceededPayment(t *testing.T) {
	provider := billing.NewMockProvider()
	svc, f := newService(t, provider)
	placement := placePendingOrder(t, svc, f)

	require.NoError(t, provider.SimulateSucceededPayment(placement.Order.PaymentIntentID))

	got, err := svc.GetOrder(context.Background(), placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)

	stored, err := f.orders.Get(context.Background(), placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, stored.Status, "the transition is persisted, not just reported")
}

func TestGetOrder_DeclinedPaymentStaysPending(t *testing.T) {
	provider := billing.NewMockProvider()
	svc, f := newService(t, provider)
	placement := placePendingOrder(t, svc, f)

	require.NoError(t, provider.SimulateFailedPayment(placement.Order.PaymentIntentID, "card_declined", "card was declined"))

	got, err := svc.GetOrder(context.Background(), placement.Order.ID)
	require.NoError(t, err, "a declined attempt must not fail the lookup")
	assert.Equal(t, order.StatusPendingPayment, got.Status)
}

func TestGetOrder_GatewayOutageStaysPending(t *testing.T) {
	provider := billing.NewMockProvider()
	svc, f := newService(t, provider)
	placement := placePendingOrder(t, svc, f)

	provider.GetPaymentIntentFunc = func(context.Context, string) (*billing.PaymentIntent, error) {
		return nil, &billing.GatewayError{Message: "rate limited", Code: "rate_limit"}
	}

	got, err := svc.GetOrder(context.Background(), placement.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPendingPayment, got.Status)
}

func TestGetOrder_PlacedOrderSkipsGateway(t *testing.T) {
	provider := billing.NewMockProvider()
	provider.CreatePaymentIntentFunc = func(context.Context, billing.CreatePaymentIntentParams) (*billing.PaymentIntent, error) {
		return nil, errors.New("gateway unreachable")
	}
	svc, f := newService(t, provider)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	placement, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderParams{Address: testAddress()})
	require.NoError(t, err)
	require.Equal(t, order.StatusPlaced, placement.Order.Status)

	calls := len(provider.CallLog)
	_, err = svc.GetOrder(context.Background(), placement.Order.ID)
	require.NoError(t, err)
	assert.Len(t, provider.CallLog, calls, "an order without an intent is never reconciled")
}

func TestSummarize_DoesNotTouchCart(t *testing.T) {
	svc, f := newService(t, nil)
	f.cart.Add(domain.CartItem{ID: "panel-540", Title: "Panel", Price: 100000}, 1)

	summary := svc.Summarize("SOLAR5")

	assert.Equal(t, int64(5000), summary.CouponSavings)
	assert.Len(t, f.cart.Items(), 1)
}

func TestPaymentConfigured(t *testing.T) {
	withGateway, _ := newService(t, billing.NewMockProvider())
	withoutGateway, _ := newService(t, nil)

	assert.True(t, withGateway.PaymentConfigured())
	assert.False(t, withoutGateway.PaymentConfigured())
}
