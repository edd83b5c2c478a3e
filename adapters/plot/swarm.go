package plot

import (
	"cmp"
	"math"
	"slices"
)

const (
	swarmBins      = 40
	swarmMaxOffset = 0.35
)

// swarmOffsets spreads points with similar values sideways so they do not
// overlap. Points are binned on the value axis; within a bin they alternate
// right and left of the center. The result is aligned with values.
func swarmOffsets(values []float64) []float64 {
	offsets := make([]float64, len(values))
	if len(values) < 2 {
		return offsets
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / swarmBins
	if width == 0 {
		width = 1
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(values[a], values[b]) })

	bins := make(map[int][]int)
	for _, idx := range order {
		b := int((values[idx] - lo) / width)
		bins[b] = append(bins[b], idx)
	}

	for _, members := range bins {
		if len(members) == 1 {
			continue
		}
		step := math.Min(0.05, swarmMaxOffset/float64((len(members)+1)/2))
		for k, idx := range members {
			// 0, +1, -1, +2, -2, ...
			slot := float64((k + 1) / 2)
			if k%2 == 0 {
				slot = -slot
			}
			offsets[idx] = slot * step
		}
	}
	return offsets
}
