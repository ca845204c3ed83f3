package coupon

import (
	"fmt"

	"github.com/spf13/viper"
)

// DemoCode is the single code recognized by the default registry,
// worth a flat 5% of the order total.
const DemoCode = "SOLAR5"

// StaticRegistry holds a fixed set of coupons keyed by normalized code.
type StaticRegistry struct {
	coupons map[string]Coupon
}

// NewStaticRegistry creates a registry from a fixed coupon list.
func NewStaticRegistry(coupons ...Coupon) *StaticRegistry {
	index := make(map[string]Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = normalizeCode(c.Code)
		index[c.Code] = c
	}
	return &StaticRegistry{coupons: index}
}

// NewDefaultRegistry creates the built-in demo registry.
func NewDefaultRegistry() *StaticRegistry {
	return NewStaticRegistry(Coupon{
		Code:        DemoCode,
		Percent:     5,
		Description: "5% off the order total",
	})
}

// Lookup returns the coupon for a code and whether it is recognized.
func (r *StaticRegistry) Lookup(code string) (Coupon, bool) {
	c, ok := r.coupons[normalizeCode(code)]
	return c, ok
}

// fileCoupon is the on-disk shape of a registry entry.
type fileCoupon struct {
	Code        string  `mapstructure:"code"`
	Percent     float64 `mapstructure:"percent"`
	Description string  `mapstructure:"description"`
}

// LoadRegistry reads a coupon registry from a config file (YAML, TOML or
// JSON, decided by extension) with a top-level "coupons" list. Entries
// without a code or with a non-positive percent are rejected.
func LoadRegistry(path string) (*StaticRegistry, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read coupon registry: %w", err)
	}

	var entries []fileCoupon
	if err := v.UnmarshalKey("coupons", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode coupon registry: %w", err)
	}

	coupons := make([]Coupon, 0, len(entries))
	for _, e := range entries {
		if normalizeCode(e.Code) == "" {
			return nil, fmt.Errorf("coupon registry entry missing code")
		}
		if e.Percent <= 0 || e.Percent > 100 {
			return nil, fmt.Errorf("coupon %q has invalid percent %v", e.Code, e.Percent)
		}
		coupons = append(coupons, Coupon{
			Code:        e.Code,
			Percent:     e.Percent,
			Description: e.Description,
		})
	}

	return NewStaticRegistry(coupons...), nil
}
