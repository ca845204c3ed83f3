package catalog_test

import (
	"math"
	"testing"

	"github.com/azorix/solarstore/internal/catalog"
	"github.com/azorix/solarstore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeBadges(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "clean list passes through",
			raw:  []string{"Bestseller", "New"},
			want: []string{"Bestseller", "New"},
		},
		{
			name: "comma separated entry is split",
			raw:  []string{"Bestseller, New"},
			want: []string{"Bestseller", "New"},
		},
		{
			name: "newline separated entry is split",
			raw:  []string{"Bestseller\nNew\n"},
			want: []string{"Bestseller", "New"},
		},
		{
			name: "blanks dropped",
			raw:  []string{"  ", "", "Bestseller"},
			want: []string{"Bestseller"},
		},
		{
			name: "nil input",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.NormalizeBadges(tt.raw))
		})
	}
}

func TestNormalizeDiscountValue(t *testing.T) {
	assert.Equal(t, float64(10), catalog.NormalizeDiscountValue(10))
	assert.Equal(t, float64(0), catalog.NormalizeDiscountValue(math.NaN()))
	assert.Equal(t, float64(0), catalog.NormalizeDiscountValue(math.Inf(1)))
}

func TestNormalizeImage(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/p.jpg",
		catalog.NormalizeImage("https://cdn.example.com/p.jpg", domain.FallbackProductImage))
	assert.Equal(t, domain.FallbackProductImage,
		catalog.NormalizeImage("", domain.FallbackProductImage))
	assert.Equal(t, domain.FallbackProductImage,
		catalog.NormalizeImage("   ", domain.FallbackProductImage))
}
