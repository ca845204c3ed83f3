package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/azorix/solarstore/internal/billing"
	"github.com/azorix/solarstore/internal/cart"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/events"
	"github.com/azorix/solarstore/internal/order"
)

// PlaceOrderParams contains the customer details for placing an order.
type PlaceOrderParams struct {
	Email      string
	Address    domain.Address
	CouponCode string
}

// Placement is the outcome of placing an order. ClientSecret is set only
// when a payment intent was created at the gateway; the frontend uses it
// to collect payment. A zero-total or gateway-less order is recorded
// directly as placed.
type Placement struct {
	Order        *order.Order
	Summary      Summary
	ClientSecret string
}

// Service runs the checkout flow: it prices the cart, creates the payment
// intent, records the order and empties the cart.
type Service struct {
	cart       *cart.Store
	calculator *Calculator
	provider   billing.Provider // nil when no gateway is configured
	orders     order.Store
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewService creates a checkout service. provider may be nil, in which case
// orders are recorded without an online payment.
func NewService(
	cartStore *cart.Store,
	calculator *Calculator,
	provider billing.Provider,
	orders order.Store,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		cart:       cartStore,
		calculator: calculator,
		provider:   provider,
		orders:     orders,
		publisher:  publisher,
		logger:     logger,
	}
}

// PaymentConfigured reports whether an online payment gateway is available.
func (s *Service) PaymentConfigured() bool {
	return s.provider != nil
}

// Summarize prices the current cart against a coupon code without placing
// an order.
func (s *Service) Summarize(couponCode string) Summary {
	return s.calculator.Calculate(s.cart.Items(), couponCode)
}

// PlaceOrder prices the cart, creates a payment intent when a gateway is
// configured, persists the order and clears the cart. An unrecognized
// coupon code is rejected rather than silently ignored. Gateway failures
// degrade to a locally recorded order so the sale is never lost.
func (s *Service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Placement, error) {
	const op = "checkout.place_order"

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, domain.Invalid(op, "cart is empty")
	}

	summary := s.calculator.Calculate(items, params.CouponCode)
	if summary.CouponRejected {
		return nil, domain.Errorf(domain.EINVALID, op, "coupon code %q is not valid", params.CouponCode)
	}

	o := &order.Order{
		ID:              uuid.New().String(),
		Status:          order.StatusPlaced,
		Email:           params.Email,
		Address:         params.Address,
		ItemCount:       summary.ItemCount,
		Subtotal:        summary.Subtotal,
		OfferSavings:    summary.OfferSavings,
		MRPSavings:      summary.MRPSavings,
		Shipping:        summary.Shipping,
		TaxIncluded:     summary.TaxIncluded,
		CouponCode:      summary.CouponCode,
		CouponSavings:   summary.CouponSavings,
		GrandTotal:      summary.GrandTotal,
		PaymentProvider: "none",
		CreatedAt:       time.Now().UTC(),
	}
	for _, line := range summary.Lines {
		o.Lines = append(o.Lines, order.Line{
			ProductID:      line.ProductID,
			Title:          line.Title,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			FinalUnitPrice: line.FinalUnitPrice,
			LineTotal:      line.LineTotal,
			OfferTitle:     line.OfferTitle,
		})
	}
	for i, item := range items {
		if item.Offer != nil && i < len(o.Lines) {
			o.Lines[i].OfferID = item.Offer.ID
		}
	}

	var clientSecret string
	if s.provider != nil {
		pi, err := s.createPaymentIntent(ctx, o, params.Email)
		if err != nil {
			// A gateway outage must not lose the sale: record the order
			// locally and let it be collected offline.
			s.logger.Error("payment intent creation failed, recording order without payment",
				slog.String("order_id", o.ID),
				slog.String("error", err.Error()))
		} else {
			o.Status = order.StatusPendingPayment
			o.PaymentProvider = "stripe"
			o.PaymentIntentID = pi.ID
			clientSecret = pi.ClientSecret
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, events.OrderPlaced{
		OrderID:       o.ID,
		Status:        string(o.Status),
		Email:         o.Email,
		ItemCount:     o.ItemCount,
		GrandTotal:    o.GrandTotal,
		CouponCode:    o.CouponCode,
		CouponSavings: o.CouponSavings,
		PlacedAt:      o.CreatedAt,
	}); err != nil {
		s.logger.Error("failed to publish order placed event",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()))
	}

	s.cart.Clear()

	s.logger.Info("order placed",
		slog.String("order_id", o.ID),
		slog.String("status", string(o.Status)),
		slog.Int64("grand_total", o.GrandTotal),
		slog.Int64("item_count", o.ItemCount))

	return &Placement{Order: o, Summary: summary, ClientSecret: clientSecret}, nil
}

// GetOrder retrieves a previously placed order. An order still awaiting
// payment is reconciled against the gateway first, so a payment confirmed
// since the last lookup is reflected in the returned status.
func (s *Service) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status == order.StatusPendingPayment && s.provider != nil && o.PaymentIntentID != "" {
		if err := s.reconcilePayment(ctx, o); err != nil {
			// Reconciliation is opportunistic: the stored order is still
			// valid, so lookups never fail on gateway trouble.
			var gwErr *billing.GatewayError
			switch {
			case errors.As(err, &gwErr) && gwErr.IsDeclined():
				s.logger.Info("order payment declined, awaiting retry",
					slog.String("order_id", o.ID),
					slog.String("error", err.Error()))
			case errors.As(err, &gwErr) && gwErr.IsTemporary():
				s.logger.Warn("gateway unavailable, skipping payment reconciliation",
					slog.String("order_id", o.ID),
					slog.String("error", err.Error()))
			default:
				s.logger.Error("payment reconciliation failed",
					slog.String("order_id", o.ID),
					slog.String("error", err.Error()))
			}
		}
	}

	return o, nil
}

// reconcilePayment asks the gateway for the order's payment intent and
// marks the order paid when the intent succeeded. A recorded payment
// attempt failure comes back as a GatewayError wrapping ErrPaymentFailed;
// the order stays pending so the customer can retry.
func (s *Service) reconcilePayment(ctx context.Context, o *order.Order) error {
	pi, err := s.provider.GetPaymentIntent(ctx, o.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if pi.Status == "succeeded" {
		if err := s.orders.UpdateStatus(ctx, o.ID, order.StatusPaid); err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		o.Status = order.StatusPaid
		s.logger.Info("order payment confirmed",
			slog.String("order_id", o.ID),
			slog.String("payment_intent_id", pi.ID))
		return nil
	}

	if pe := pi.LastPaymentError; pe != nil {
		return &billing.GatewayError{
			Message:       pe.Message,
			Code:          pe.Code,
			DeclineCode:   pe.DeclineCode,
			OriginalError: billing.ErrPaymentFailed,
		}
	}

	return nil
}

// createPaymentIntent charges in paise. Gateways reject zero-amount
// intents, so a fully discounted order still charges the 1-paise minimum.
func (s *Service) createPaymentIntent(ctx context.Context, o *order.Order, email string) (*billing.PaymentIntent, error) {
	amountPaise := o.GrandTotal * 100
	if amountPaise < 1 {
		amountPaise = 1
	}

	return s.provider.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountPaise:    amountPaise,
		Currency:       "inr",
		Description:    fmt.Sprintf("Order %s", o.ID),
		ReceiptEmail:   email,
		IdempotencyKey: o.ID,
		Metadata: map[string]string{
			"order_id": o.ID,
		},
	})
}
