package events

import (
	"context"
	"time"
)

// SubjectOrderPlaced is the subject order placement events are published on.
const SubjectOrderPlaced = "orders.placed"

// OrderPlaced is emitted after an order is persisted. Downstream consumers
// (fulfillment, notifications) react to it asynchronously; publishing
// failures never fail the checkout.
type OrderPlaced struct {
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	Email         string    `json:"email,omitempty"`
	ItemCount     int64     `json:"item_count"`
	GrandTotal    int64     `json:"grand_total"`
	CouponCode    string    `json:"coupon_code,omitempty"`
	CouponSavings int64     `json:"coupon_savings,omitempty"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Publisher publishes order lifecycle events.
type Publisher interface {
	// PublishOrderPlaced publishes an order placement event.
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error

	// Close releases the underlying connection.
	Close()
}
