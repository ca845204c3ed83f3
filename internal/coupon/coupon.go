package coupon

import "strings"

// Coupon is a recognized order-level discount code.
type Coupon struct {
	Code        string
	Percent     float64
	Description string
}

// Registry looks up coupon codes. Lookup is pure: applying a coupon never
// mutates cart items, only the caller's applied-coupon state.
type Registry interface {
	// Lookup returns the coupon for a code and whether it is recognized.
	// Matching ignores surrounding whitespace and letter case.
	Lookup(code string) (Coupon, bool)
}

// normalizeCode canonicalizes a user-entered coupon code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
