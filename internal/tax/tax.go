package tax

// Calculator reports the tax portion of an order total.
type Calculator interface {
	// Included returns the tax already contained in the given total, in
	// whole currency units. It is informational: prices in this store are
	// tax-inclusive, so the amount is never added on top.
	Included(orderTotal int64) int64
}
