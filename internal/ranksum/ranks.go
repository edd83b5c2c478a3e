package ranksum

import (
	"cmp"
	"slices"
)

// rankData assigns 1-based ranks to values, averaging the ranks of tied
// values. It also returns the tie term Σ(t³ - t) over all tie groups, which
// is zero for untied data.
func rankData(values []float64) (ranks []float64, tieTerm float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// positions i..j share the average of ranks i+1..j+1
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		t := float64(j - i + 1)
		tieTerm += t*t*t - t
		i = j + 1
	}
	return ranks, tieTerm
}
