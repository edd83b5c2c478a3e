package analysis

import (
	"math"
	"slices"

	"gomwu/domain/stats"
	"gomwu/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// Describe computes count, median, mean, sample standard deviation and the
// 25th/75th percentiles of one group
func Describe(sample []float64) (stats.DescriptiveStats, error) {
	if len(sample) == 0 {
		return stats.DescriptiveStats{}, errors.InvalidInput("cannot describe an empty sample")
	}
	data := mstats.Float64Data(sample)

	mean, err := mstats.Mean(data)
	if err != nil {
		return stats.DescriptiveStats{}, errors.ComputationError("mean", err)
	}
	median, err := mstats.Median(data)
	if err != nil {
		return stats.DescriptiveStats{}, errors.ComputationError("median", err)
	}

	stdDev := math.NaN()
	if len(sample) > 1 {
		if stdDev, err = mstats.StandardDeviationSample(data); err != nil {
			return stats.DescriptiveStats{}, errors.ComputationError("standard deviation", err)
		}
	}

	sorted := slices.Clone(sample)
	slices.Sort(sorted)

	return stats.DescriptiveStats{
		Count:  len(sample),
		Median: median,
		Mean:   mean,
		StdDev: stdDev,
		Q25:    linearQuantile(sorted, 0.25),
		Q75:    linearQuantile(sorted, 0.75),
	}, nil
}

// linearQuantile interpolates between the closest ranks of sorted data:
// h = (n-1)p, q = x[⌊h⌋] + (h-⌊h⌋)(x[⌊h⌋+1]-x[⌊h⌋])
func linearQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
