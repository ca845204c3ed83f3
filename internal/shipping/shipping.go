package shipping

// Quoter computes the shipping charge for an order total.
// Implementations are pure; the charge is a function of the already
// offer-discounted order total only.
type Quoter interface {
	// Quote returns the shipping charge in whole currency units.
	Quote(orderTotal int64) int64
}
