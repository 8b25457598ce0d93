package domain

import (
	"math"
	"sort"
)

// PriceUsage prices an entire usage quantity at the single applicable tier's
// rate. The schedule is not graduated: once a tier is selected, every cubic
// meter is billed at that tier's price.
//
// Selection walks the schedule ascending by MinUsage and keeps the last tier
// whose band contains the usage, so a value sitting exactly on a boundary
// lands in the higher band. When usage exceeds every bounded band, the highest
// tier with MinUsage <= usage acts as the open-ended fallback.
//
// Zero usage or an empty schedule prices to zero. Malformed schedules are a
// caller precondition, not a runtime error.
func PriceUsage(usage float64, tiers []Tier) int64 {
	if usage <= 0 || len(tiers) == 0 {
		return 0
	}

	var selected *Tier
	var fallback *Tier
	for i := range tiers {
		tier := &tiers[i]
		if usage < tier.MinUsage {
			continue
		}
		fallback = tier
		if tier.MaxUsage == nil || usage <= *tier.MaxUsage {
			selected = tier
		}
	}
	if selected == nil {
		selected = fallback
	}
	if selected == nil {
		return 0
	}

	return roundMoney(usage * float64(selected.PricePerM3))
}

// SortTiers orders a schedule ascending by MinUsage, the form PriceUsage
// expects.
func SortTiers(tiers []Tier) {
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinUsage < tiers[j].MinUsage })
}

func roundMoney(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
