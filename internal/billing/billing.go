package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, Razorpay, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with a client secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent, used to verify
	// payment status before fulfilling an order.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountPaise is the amount in the smallest currency unit. Gateways
	// reject zero-amount intents, so callers floor this at 1.
	AmountPaise int64

	// Currency code (ISO 4217) - e.g., "inr"
	Currency string

	// Description appears on the customer's statement and in the gateway dashboard
	Description string

	// ReceiptEmail is where the gateway sends the payment receipt
	ReceiptEmail string

	// Metadata for filtering and reporting (always include order_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents for the same order
	IdempotencyKey string
}

// PaymentIntent represents a payment intent at the gateway.
type PaymentIntent struct {
	// ID is the gateway payment intent ID (pi_...)
	ID string

	// ClientSecret is used by the frontend SDK to confirm payment
	ClientSecret string

	// AmountPaise is the amount in smallest currency unit
	AmountPaise int64

	// Currency code
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata passed during creation
	Metadata map[string]string

	// CreatedAt is when the payment intent was created
	CreatedAt time.Time

	// LastPaymentError contains details if a payment attempt failed
	LastPaymentError *PaymentError
}

// PaymentError contains details about a failed payment attempt.
type PaymentError struct {
	Code        string // gateway error code
	Message     string // human-readable message
	DeclineCode string // reason card was declined (if applicable)
}
