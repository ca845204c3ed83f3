package tax

import "math"

// IncludedRateCalculator reports tax as a fixed percentage of the order
// total, rounded to the nearest whole currency unit.
type IncludedRateCalculator struct {
	rate float64 // e.g., 0.18 for 18% GST
}

// NewIncludedRateCalculator creates a fixed-rate inclusive tax calculator.
func NewIncludedRateCalculator(rate float64) *IncludedRateCalculator {
	return &IncludedRateCalculator{rate: rate}
}

// Included returns round(orderTotal * rate).
func (c *IncludedRateCalculator) Included(orderTotal int64) int64 {
	if orderTotal <= 0 {
		return 0
	}
	return int64(math.Round(float64(orderTotal) * c.rate))
}
