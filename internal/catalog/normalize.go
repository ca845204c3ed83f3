package catalog

import (
	"math"
	"regexp"
	"strings"
)

var badgeSeparators = regexp.MustCompile(`[\n,]+`)

// NormalizeBadges splits a raw badge column into clean entries. Catalog
// rows store badges either as a list or as a single newline- or
// comma-separated string; blanks are dropped either way.
func NormalizeBadges(raw []string) []string {
	badges := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range badgeSeparators.Split(entry, -1) {
			part = strings.TrimSpace(part)
			if part != "" {
				badges = append(badges, part)
			}
		}
	}
	return badges
}

// NormalizeDiscountValue coerces a stored discount value into a usable
// number. Rows imported from spreadsheets occasionally carry NaN.
func NormalizeDiscountValue(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// NormalizeImage picks the display image, falling back to the shared
// placeholder when the row has none.
func NormalizeImage(image string, fallback string) string {
	if strings.TrimSpace(image) == "" {
		return fallback
	}
	return image
}
