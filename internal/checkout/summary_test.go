package checkout_test

import (
	"testing"

	"github.com/azorix/solarstore/internal/checkout"
	"github.com/azorix/solarstore/internal/coupon"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/azorix/solarstore/internal/shipping"
	"github.com/azorix/solarstore/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator() *checkout.Calculator {
	return checkout.NewCalculator(
		shipping.NewThresholdQuoter(75000, 999),
		tax.NewIncludedRateCalculator(0.18),
		coupon.NewDefaultRegistry(),
	)
}

func int64Ptr(v int64) *int64 { return &v }

func TestCalculate_EmptyCart(t *testing.T) {
	summary := newCalculator().Calculate(nil, "")

	assert.Equal(t, int64(0), summary.ItemCount)
	assert.Equal(t, int64(0), summary.Subtotal)
	assert.Equal(t, int64(0), summary.FinalTotal)
	assert.Equal(t, int64(0), summary.Shipping, "empty cart never charges shipping")
	assert.Equal(t, int64(0), summary.TaxIncluded)
	assert.Equal(t, int64(0), summary.GrandTotal)
	assert.Empty(t, summary.Lines)
}

func TestCalculate_SingleLineWithPercentageOffer(t *testing.T) {
	items := []domain.CartItem{
		{
			ID:       "panel-540",
			Title:    "540W Mono PERC Panel",
			Price:    100000,
			Quantity: 1,
			Offer: &domain.OfferDetail{
				ID:            "launch-10",
				Title:         "Launch Offer",
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
			},
		},
	}

	summary := newCalculator().Calculate(items, "")

	require.Len(t, summary.Lines, 1)
	line := summary.Lines[0]
	assert.Equal(t, int64(100000), line.UnitPrice)
	assert.Equal(t, int64(90000), line.FinalUnitPrice)
	assert.Equal(t, int64(10000), line.OfferSavings)
	assert.Equal(t, "Launch Offer", line.OfferTitle)

	assert.Equal(t, int64(100000), summary.Subtotal)
	assert.Equal(t, int64(10000), summary.OfferSavings)
	assert.Equal(t, int64(90000), summary.FinalTotal)
	assert.Equal(t, int64(0), summary.Shipping, "90000 clears the free-shipping threshold")
	assert.Equal(t, int64(16200), summary.TaxIncluded)
	assert.Equal(t, int64(90000), summary.GrandTotal)
}

func TestCalculate_ShippingChargedBelowThreshold(t *testing.T) {
	items := []domain.CartItem{
		{ID: "cable-kit", Title: "DC Cable Kit", Price: 2500, Quantity: 2},
	}

	summary := newCalculator().Calculate(items, "")

	assert.Equal(t, int64(5000), summary.FinalTotal)
	assert.Equal(t, int64(999), summary.Shipping)
	assert.Equal(t, int64(5999), summary.GrandTotal)
}

func TestCalculate_MRPSavingsReportedNotApplied(t *testing.T) {
	items := []domain.CartItem{
		{
			ID:       "inverter-5k",
			Title:    "5kW Hybrid Inverter",
			Price:    80000,
			MRP:      int64Ptr(95000),
			Quantity: 1,
		},
	}

	summary := newCalculator().Calculate(items, "")

	require.Len(t, summary.Lines, 1)
	assert.Equal(t, int64(15000), summary.Lines[0].MRPSavings)
	assert.Equal(t, int64(15000), summary.MRPSavings)
	// The markdown is already baked into the price: the total is the
	// selling price, not MRP minus savings again.
	assert.Equal(t, int64(80000), summary.FinalTotal)
	assert.Equal(t, int64(15000), summary.TotalSavings)
}

func TestCalculate_MRPBelowPriceIgnored(t *testing.T) {
	items := []domain.CartItem{
		{ID: "p1", Title: "Panel", Price: 80000, MRP: int64Ptr(80000), Quantity: 1},
		{ID: "p2", Title: "Panel", Price: 80000, MRP: int64Ptr(70000), Quantity: 1},
	}

	summary := newCalculator().Calculate(items, "")

	assert.Equal(t, int64(0), summary.MRPSavings)
}

func TestCalculate_CouponApplied(t *testing.T) {
	items := []domain.CartItem{
		{ID: "panel-540", Title: "Panel", Price: 100000, Quantity: 1},
	}

	summary := newCalculator().Calculate(items, "solar5")

	assert.Equal(t, "SOLAR5", summary.CouponCode)
	assert.False(t, summary.CouponRejected)
	assert.Equal(t, int64(5000), summary.CouponSavings)
	assert.Equal(t, int64(95000), summary.GrandTotal)
	assert.Equal(t, int64(5000), summary.TotalSavings)
}

func TestCalculate_CouponRejectedStillPrices(t *testing.T) {
	items := []domain.CartItem{
		{ID: "panel-540", Title: "Panel", Price: 100000, Quantity: 1},
	}

	summary := newCalculator().Calculate(items, "WINTER20")

	assert.True(t, summary.CouponRejected)
	assert.Empty(t, summary.CouponCode)
	assert.Equal(t, int64(0), summary.CouponSavings)
	assert.Equal(t, int64(100000), summary.GrandTotal)
}

func TestCalculate_CouponAppliesAfterOfferDiscounts(t *testing.T) {
	items := []domain.CartItem{
		{
			ID:       "panel-540",
			Title:    "Panel",
			Price:    100000,
			Quantity: 1,
			Offer: &domain.OfferDetail{
				ID:            "launch-10",
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: 10,
			},
		},
	}

	summary := newCalculator().Calculate(items, "SOLAR5")

	// 5% of the discounted 90000, not of the 100000 subtotal.
	assert.Equal(t, int64(4500), summary.CouponSavings)
	assert.Equal(t, int64(85500), summary.GrandTotal)
}

func TestCalculate_MixedCart(t *testing.T) {
	items := []domain.CartItem{
		{
			ID:       "panel-540",
			Title:    "Panel",
			Price:    25000,
			MRP:      int64Ptr(28000),
			Quantity: 2,
			Offer: &domain.OfferDetail{
				ID:            "flat-2k",
				DiscountType:  domain.DiscountFlat,
				DiscountValue: 2000,
			},
		},
		{ID: "cable-kit", Title: "Cable Kit", Price: 3000, Quantity: 1},
	}

	summary := newCalculator().Calculate(items, "")

	assert.Equal(t, int64(3), summary.ItemCount)
	assert.Equal(t, int64(53000), summary.Subtotal)
	assert.Equal(t, int64(4000), summary.OfferSavings)
	assert.Equal(t, int64(6000), summary.MRPSavings)
	assert.Equal(t, int64(49000), summary.FinalTotal)
	assert.Equal(t, int64(999), summary.Shipping)
	assert.Equal(t, int64(49999), summary.GrandTotal)
	assert.Equal(t, int64(10000), summary.TotalSavings)
}

func TestCalculate_GrandTotalNeverNegative(t *testing.T) {
	items := []domain.CartItem{
		{ID: "sticker", Title: "Sticker", Price: 10, Quantity: 1},
	}
	calc := checkout.NewCalculator(
		shipping.NewThresholdQuoter(75000, 0),
		tax.NewIncludedRateCalculator(0.18),
		coupon.NewStaticRegistry(coupon.Coupon{Code: "ALL", Percent: 100}),
	)

	summary := calc.Calculate(items, "ALL")

	assert.Equal(t, int64(0), summary.GrandTotal)
	assert.GreaterOrEqual(t, summary.GrandTotal, int64(0))
}
