package domain

// FallbackProductImage is used when a catalog row has no usable image.
const FallbackProductImage = "https://images.unsplash.com/photo-1584270354949-1f2f7d1c1447?q=80&w=1200&auto=format&fit=crop"

// Product is a catalog record as seen by the storefront.
// MRP, when present and greater than Price, represents a markdown that is
// already baked into Price.
type Product struct {
	ID     string
	Title  string
	Price  int64
	MRP    *int64
	Image  string
	Badges []string
}

// Address is a delivery address captured at checkout.
type Address struct {
	Name    string
	Phone   string
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
}
