package tax_test

import (
	"testing"

	"github.com/azorix/solarstore/internal/tax"
	"github.com/stretchr/testify/assert"
)

func TestIncludedRateCalculator_Included(t *testing.T) {
	calc := tax.NewIncludedRateCalculator(0.18)

	assert.Equal(t, int64(0), calc.Included(0))
	assert.Equal(t, int64(18000), calc.Included(100000))
	assert.Equal(t, int64(3240), calc.Included(18000))
	// 18% of 9999 is 1799.82 -> rounds to 1800.
	assert.Equal(t, int64(1800), calc.Included(9999))
}

func TestIncludedRateCalculator_ImplementsCalculator(t *testing.T) {
	var _ tax.Calculator = tax.NewIncludedRateCalculator(0.18)
}
