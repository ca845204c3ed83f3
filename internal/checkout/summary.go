package checkout

import (
	"math"
	"strings"

	"github.com/azorix/solarstore/internal/coupon"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/pricing"
	"github.com/azorix/solarstore/internal/shipping"
	"github.com/azorix/solarstore/internal/tax"
)

// Line is the priced breakdown of a single cart line.
type Line struct {
	ProductID      string
	Title          string
	Quantity       int64
	UnitPrice      int64 // base unit price before the offer
	FinalUnitPrice int64 // offer-discounted unit price
	LineTotal      int64 // FinalUnitPrice * Quantity
	OfferSavings   int64
	MRPSavings     int64
	OfferTitle     string
}

// Summary is the checkout-facing order breakdown. FinalTotal is the
// offer-discounted goods total; GrandTotal is the amount charged.
// TaxIncluded is informational: prices are tax-inclusive, it is never
// added on top. OfferSavings and MRPSavings are two separate, additive
// "you saved" figures; the MRP markdown is assumed already reflected in
// the price, so it is reported but not applied again.
type Summary struct {
	Lines []Line

	ItemCount     int64
	Subtotal      int64
	OfferSavings  int64
	MRPSavings    int64
	FinalTotal    int64
	Shipping      int64
	TaxIncluded   int64
	CouponSavings int64
	GrandTotal    int64
	TotalSavings  int64

	// CouponCode is the normalized code that was applied, empty if none.
	// CouponRejected is set when a code was supplied but not recognized;
	// the summary then proceeds with zero coupon savings.
	CouponCode     string
	CouponRejected bool
}

// Calculator composes per-line offer pricing with shipping, inclusive tax
// and coupon lookup. It holds no mutable state; Calculate is recomputed
// whenever the item list, any line's offer, or the coupon state changes.
type Calculator struct {
	shipping shipping.Quoter
	tax      tax.Calculator
	coupons  coupon.Registry
}

// NewCalculator creates an order summary calculator.
func NewCalculator(quoter shipping.Quoter, taxCalc tax.Calculator, coupons coupon.Registry) *Calculator {
	return &Calculator{
		shipping: quoter,
		tax:      taxCalc,
		coupons:  coupons,
	}
}

// Calculate produces the full order breakdown for the given cart lines and
// coupon code. An empty code means no coupon; an unrecognized code sets
// CouponRejected and contributes zero savings.
func (c *Calculator) Calculate(items []domain.CartItem, couponCode string) Summary {
	summary := Summary{Lines: make([]Line, 0, len(items))}

	for _, item := range items {
		priced := pricing.PriceFor(item.Price, item.Offer)

		line := Line{
			ProductID:      item.ID,
			Title:          item.Title,
			Quantity:       item.Quantity,
			UnitPrice:      item.Price,
			FinalUnitPrice: priced.FinalPrice,
			LineTotal:      priced.FinalPrice * item.Quantity,
			OfferSavings:   priced.DiscountAmount * item.Quantity,
		}
		if item.MRP != nil && *item.MRP > item.Price {
			line.MRPSavings = (*item.MRP - item.Price) * item.Quantity
		}
		if item.Offer != nil {
			line.OfferTitle = item.Offer.Title
		}

		summary.Lines = append(summary.Lines, line)
		summary.ItemCount += item.Quantity
		summary.Subtotal += item.Price * item.Quantity
		summary.OfferSavings += line.OfferSavings
		summary.MRPSavings += line.MRPSavings
		summary.FinalTotal += line.LineTotal
	}

	summary.Shipping = c.shipping.Quote(summary.FinalTotal)
	summary.TaxIncluded = c.tax.Included(summary.FinalTotal)

	if couponCode = strings.TrimSpace(couponCode); couponCode != "" {
		if applied, ok := c.coupons.Lookup(couponCode); ok {
			summary.CouponCode = applied.Code
			summary.CouponSavings = int64(math.Round(float64(summary.FinalTotal) * applied.Percent / 100))
		} else {
			summary.CouponRejected = true
		}
	}

	summary.GrandTotal = summary.FinalTotal - summary.CouponSavings + summary.Shipping
	if summary.GrandTotal < 0 {
		summary.GrandTotal = 0
	}
	summary.TotalSavings = summary.OfferSavings + summary.MRPSavings + summary.CouponSavings

	return summary
}
