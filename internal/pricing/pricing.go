package pricing

import (
	"math"

	"github.com/azorix/solarstore/internal/domain"
)

// Result is the outcome of applying an offer to a base unit price.
type Result struct {
	FinalPrice     int64
	DiscountAmount int64
}

// PriceFor computes the discounted unit price for a base price and an
// optional offer. The function is pure and deterministic; callers invoke it
// fresh for every computation instead of caching results across offers.
//
// The discount is clamped to [0, basePrice], so the final price is never
// negative and never exceeds the base price. A non-finite discount value
// counts as zero. Flat discounts are currency amounts; percentage discounts
// are computed against the base price and rounded to the nearest whole
// currency unit.
func PriceFor(basePrice int64, offer *domain.OfferDetail) Result {
	if offer == nil {
		return Result{FinalPrice: basePrice}
	}

	value := offer.DiscountValue
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	var raw float64
	if offer.DiscountType == domain.DiscountFlat {
		raw = value
	} else {
		raw = float64(basePrice) * value / 100
	}

	discount := int64(math.Round(raw))
	if discount > basePrice {
		discount = basePrice
	}
	if discount < 0 {
		discount = 0
	}

	return Result{
		FinalPrice:     basePrice - discount,
		DiscountAmount: discount,
	}
}

// UnitPrice returns the offer-adjusted unit price for a cart line.
func UnitPrice(item domain.CartItem) int64 {
	return PriceFor(item.Price, item.Offer).FinalPrice
}

// LineTotal returns the offer-adjusted total for a cart line.
func LineTotal(item domain.CartItem) int64 {
	return UnitPrice(item) * item.Quantity
}
