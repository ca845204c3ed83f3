package order

import (
	"context"
	"time"

	"github.com/azorix/solarstore/internal/domain"
)

// Status tracks an order through the payment flow.
type Status string

const (
	// StatusPendingPayment means a payment intent was created and awaits
	// confirmation by the customer.
	StatusPendingPayment Status = "pending_payment"

	// StatusPlaced means the order was recorded without an online payment,
	// either because no gateway is configured or the gateway was unreachable.
	StatusPlaced Status = "placed"

	// StatusPaid means the gateway confirmed the payment.
	StatusPaid Status = "paid"
)

// Line is a priced order line, frozen at checkout time.
type Line struct {
	ProductID      string
	Title          string
	Quantity       int64
	UnitPrice      int64
	FinalUnitPrice int64
	LineTotal      int64
	OfferID        string
	OfferTitle     string
}

// Order is a placed order with its full pricing breakdown. Amounts are
// denormalized from the checkout summary so the record stays stable even
// if offers or coupons change later.
type Order struct {
	ID              string
	Status          Status
	Email           string
	Address         domain.Address
	Lines           []Line
	ItemCount       int64
	Subtotal        int64
	OfferSavings    int64
	MRPSavings      int64
	Shipping        int64
	TaxIncluded     int64
	CouponCode      string
	CouponSavings   int64
	GrandTotal      int64
	PaymentProvider string
	PaymentIntentID string
	CreatedAt       time.Time
}

// Store persists orders.
type Store interface {
	// Create persists a new order with its lines.
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by ID. Returns a domain ENOTFOUND error when
	// no such order exists.
	Get(ctx context.Context, id string) (*Order, error)

	// UpdateStatus transitions an order's status.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
