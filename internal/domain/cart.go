package domain

// DiscountType identifies how an offer's discount value is interpreted.
type DiscountType string

const (
	// DiscountPercentage interprets the value as a percentage of the base price.
	DiscountPercentage DiscountType = "percentage"

	// DiscountFlat interprets the value as a flat currency amount.
	DiscountFlat DiscountType = "flat"
)

// OfferDetail describes a promotional discount attached to a cart line.
// A flat offer with value 0 is legal and represents a badge-only offer
// (e.g., "free consultation included").
type OfferDetail struct {
	ID            string
	Title         string
	DiscountType  DiscountType
	DiscountValue float64

	// Display metadata, no pricing effect.
	CouponCode  string
	Description string
	Terms       string
	Badge       string
}

// CartItem is one line in the cart, keyed by the product ID.
// Title, price and image are copied at add-time and not live-synced to
// catalog changes. Quantity is always >= 1; a line whose quantity would
// drop to zero is removed from the cart instead.
type CartItem struct {
	ID       string
	Title    string
	Price    int64
	MRP      *int64
	Image    string
	Quantity int64
	Offer    *OfferDetail
}

// Clone returns a deep copy of the item so snapshots handed to callers
// cannot alias the store's state.
func (i CartItem) Clone() CartItem {
	out := i
	if i.MRP != nil {
		mrp := *i.MRP
		out.MRP = &mrp
	}
	if i.Offer != nil {
		offer := *i.Offer
		out.Offer = &offer
	}
	return out
}
