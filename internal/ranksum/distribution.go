package ranksum

import "math"

// exactWorkLimit bounds the cell updates spent on one exact distribution.
// Beyond it MethodAuto falls back to the normal approximation and
// MethodExact fails with ErrExactTooLarge.
const exactWorkLimit = 5e8

// exactWork estimates the cell updates nullPMF(m, n, t) performs
func exactWork(m, n, t int) float64 {
	k, big := m, n
	if k > big {
		k, big = big, k
	}
	return float64(k) * float64(big) * float64(min(t, k*big)+1)
}

// nullPMF returns P(U = v) for v in 0..t, for samples of size m and n
// without ties.
//
// The largest pooled observation belongs to the first sample with
// probability i/(i+j), in which case it adds j to U, so
//
//	p(i, j, v) = i/(i+j) p(i-1, j, v-j) + j/(i+j) p(i, j-1, v)
//
// Every term is a convex combination of non-negative values: nothing
// cancels and nothing overflows.
func nullPMF(m, n, t int) []float64 {
	k, big := m, n
	if k > big {
		k, big = big, k
	}
	t = min(t, k*big)
	if t < 0 {
		return nil
	}

	// p[i] holds p(i, j, ·) for the current j; with j = 0, U is 0
	p := make([][]float64, k+1)
	for i := range p {
		p[i] = make([]float64, t+1)
		p[i][0] = 1
	}
	for j := 1; j <= big; j++ {
		for i := 1; i <= k; i++ {
			fromX := float64(i) / float64(i+j)
			fromY := float64(j) / float64(i+j)
			cur, prev := p[i], p[i-1]
			for v := min(t, i*j); v >= 0; v-- {
				next := fromY * cur[v]
				if v >= j {
					next += fromX * prev[v-j]
				}
				cur[v] = next
			}
		}
	}
	return p[k]
}

// exactCDF returns P(U <= u) under the null hypothesis for untied samples
// of size m and n.
func exactCDF(u float64, m, n int) (float64, error) {
	t := int(math.Floor(u + 1e-9))
	if t < 0 {
		return 0, nil
	}
	if t >= m*n {
		return 1, nil
	}
	if exactWork(m, n, t) > exactWorkLimit {
		return 0, ErrExactTooLarge
	}

	var cdf float64
	for _, p := range nullPMF(m, n, t) {
		cdf += p
	}
	if math.IsNaN(cdf) || math.IsInf(cdf, 0) || cdf < 0 {
		return 0, ErrExactUnstable
	}
	return math.Min(cdf, 1), nil
}
