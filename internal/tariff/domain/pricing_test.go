package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(v float64) *float64 { return &v }

func twoBandSchedule() []Tier {
	return []Tier{
		{MinUsage: 0, MaxUsage: float64Ptr(5), PricePerM3: 3000},
		{MinUsage: 5, MaxUsage: nil, PricePerM3: 5000},
	}
}

func TestPriceUsage_TierSelection(t *testing.T) {
	tiers := twoBandSchedule()

	assert.Equal(t, int64(13500), PriceUsage(4.5, tiers))
	// Boundary value lands in the higher band.
	assert.Equal(t, int64(25000), PriceUsage(5, tiers))
	assert.Equal(t, int64(60000), PriceUsage(12, tiers))
}

func TestPriceUsage_ZeroAndEmpty(t *testing.T) {
	assert.Equal(t, int64(0), PriceUsage(0, twoBandSchedule()))
	assert.Equal(t, int64(0), PriceUsage(12, nil))
	assert.Equal(t, int64(0), PriceUsage(-1, twoBandSchedule()))
}

func TestPriceUsage_FallbackAboveBoundedBands(t *testing.T) {
	// No open-ended band; usage beyond every bound prices at the highest band
	// whose MinUsage is below it.
	tiers := []Tier{
		{MinUsage: 0, MaxUsage: float64Ptr(5), PricePerM3: 3000},
		{MinUsage: 5, MaxUsage: float64Ptr(10), PricePerM3: 5000},
	}

	assert.Equal(t, int64(100000), PriceUsage(20, tiers))
}

func TestPriceUsage_LinearWithinTier(t *testing.T) {
	tiers := twoBandSchedule()

	prev := int64(-1)
	for _, usage := range []float64{0.5, 1, 2, 3.5, 4.9} {
		cost := PriceUsage(usage, tiers)
		assert.Equal(t, int64(usage*3000+0.5), cost)
		assert.Greater(t, cost, prev)
		prev = cost
	}
}

func TestPriceUsage_RoundsToNearestRupiah(t *testing.T) {
	tiers := []Tier{{MinUsage: 0, MaxUsage: nil, PricePerM3: 3333}}

	// 1.5 * 3333 = 4999.5 rounds up.
	assert.Equal(t, int64(5000), PriceUsage(1.5, tiers))
}

func TestSortTiers(t *testing.T) {
	tiers := []Tier{
		{MinUsage: 5, PricePerM3: 5000},
		{MinUsage: 0, MaxUsage: float64Ptr(5), PricePerM3: 3000},
	}

	SortTiers(tiers)
	assert.Equal(t, float64(0), tiers[0].MinUsage)
	assert.Equal(t, float64(5), tiers[1].MinUsage)
}
