package catalog

import "github.com/azorix/solarstore/internal/domain"

func int64Ptr(v int64) *int64 { return &v }

// NewDemoService returns the built-in demo catalog, used when no database
// is configured. It mirrors the seed migration.
func NewDemoService() *MemoryService {
	products := []domain.Product{
		{
			ID:     "panel-540",
			Title:  "540W Mono PERC Solar Panel",
			Price:  14500,
			MRP:    int64Ptr(16900),
			Image:  "https://cdn.azorix.in/products/panel-540.jpg",
			Badges: []string{"Bestseller", "25yr Warranty"},
		},
		{
			ID:    "panel-450",
			Title: "450W Half-Cut Solar Panel",
			Price: 11900,
			MRP:   int64Ptr(13500),
			Image: "https://cdn.azorix.in/products/panel-450.jpg",
		},
		{
			ID:     "inverter-5k",
			Title:  "5kW Hybrid Solar Inverter",
			Price:  82000,
			MRP:    int64Ptr(95000),
			Image:  "https://cdn.azorix.in/products/inverter-5k.jpg",
			Badges: []string{"Hybrid", "WiFi Monitoring"},
		},
		{
			ID:    "battery-200",
			Title: "200Ah Tubular Battery",
			Price: 21500,
			MRP:   int64Ptr(24000),
			Image: "https://cdn.azorix.in/products/battery-200.jpg",
		},
		{
			ID:     "kit-3kw",
			Title:  "3kW On-Grid Rooftop Kit",
			Price:  135000,
			MRP:    int64Ptr(155000),
			Image:  "https://cdn.azorix.in/products/kit-3kw.jpg",
			Badges: []string{"Free Installation"},
		},
		{
			ID:    "cable-kit",
			Title: "DC Solar Cable Kit (10m)",
			Price: 2500,
			Image: domain.FallbackProductImage,
		},
	}

	offers := []domain.OfferDetail{
		{
			ID:            "launch-10",
			Title:         "Launch Offer 10% Off",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 10,
			Description:   "10% off on rooftop panels for the launch window.",
			Terms:         "Cannot be combined with dealer pricing.",
			Badge:         "LAUNCH",
		},
		{
			ID:            "flat-5000",
			Title:         "Flat ₹5000 Off Kits",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: 5000,
			CouponCode:    "SOLAR5000",
			Description:   "Flat discount on complete rooftop kits.",
			Terms:         "One use per order.",
		},
		{
			ID:            "free-consult",
			Title:         "Free Site Consultation",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: 0,
			Description:   "Complimentary site survey with this product.",
			Badge:         "FREE SURVEY",
		},
	}

	return NewMemoryService(products, offers)
}
