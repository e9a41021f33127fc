package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenorRoundTrip(t *testing.T) {
	for m := 1.0; m <= 12; m += 0.5 {
		assert.InDelta(t, m, YearsToMonths(MonthsToYears(m)), 1e-12)
	}
	assert.Equal(t, 0.5, MonthsToYears(6))
	assert.Equal(t, 18.0, YearsToMonths(1.5))
}
