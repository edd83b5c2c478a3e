package analysis

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// minPValue keeps p/2 representable so the normal quantile stays finite
const minPValue = 2 * math.SmallestNonzeroFloat64

// EffectSizeFromP returns r = |z| / sqrt(n) where z = Φ⁻¹(p/2) is recovered
// from a two-sided p-value. This approximates the rank-sum z and is only
// meaningful in the normal-approximation regime.
func EffectSizeFromP(p float64, n int) float64 {
	if n <= 0 || math.IsNaN(p) || p >= 1 {
		return 0
	}
	if p < minPValue {
		p = minPValue
	}
	z := mathext.NormalQuantile(p / 2)
	return math.Abs(z / math.Sqrt(float64(n)))
}

// EffectSizeFromZ returns r = |z| / sqrt(n)
func EffectSizeFromZ(z float64, n int) float64 {
	if n <= 0 || math.IsNaN(z) {
		return 0
	}
	return math.Abs(z / math.Sqrt(float64(n)))
}
