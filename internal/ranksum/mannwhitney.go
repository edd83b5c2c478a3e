// Package ranksum implements the two-sided Mann-Whitney U (Wilcoxon rank-sum)
// test for two independent samples.
package ranksum

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Method selects how the p-value is computed
type Method string

const (
	// MethodAuto uses the exact distribution when either sample has at most
	// ExactMaxSize observations and there are no ties, unless the exact
	// distribution would cost more than exactWorkLimit cell updates.
	MethodAuto       Method = "auto"
	MethodExact      Method = "exact"
	MethodAsymptotic Method = "asymptotic"
)

// ExactMaxSize is the sample size at or below which MethodAuto goes exact
const ExactMaxSize = 8

var (
	ErrEmptySample   = errors.New("ranksum: sample is empty")
	ErrNaN           = errors.New("ranksum: sample contains NaN")
	ErrTiesExact     = errors.New("ranksum: exact method requires data without ties")
	ErrUnknownMethod = errors.New("ranksum: unknown method")
	ErrExactTooLarge = errors.New("ranksum: samples too large for the exact distribution, use the asymptotic method")
	ErrExactUnstable = errors.New("ranksum: exact distribution is not finite")
)

// ParseMethod accepts auto, exact or asymptotic (case-insensitive). The
// empty string maps to MethodAuto.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodAuto, nil
	case MethodAuto, MethodExact, MethodAsymptotic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Options controls the test
type Options struct {
	Method        Method
	UseContinuity bool // 0.5 continuity correction in the normal approximation
}

// DefaultOptions matches the common statistical-package defaults
func DefaultOptions() Options {
	return Options{Method: MethodAuto, UseContinuity: true}
}

// Result of a two-sided Mann-Whitney U test
type Result struct {
	U1     float64 // U statistic of the first sample
	U2     float64 // n1*n2 - U1
	PValue float64
	// Z is the standardised rank-sum statistic (U1 - mean)/sd with tie
	// correction and without continuity correction. Zero when sd is zero.
	Z       float64
	Method  Method // method actually used
	N1      int
	N2      int
	HasTies bool
}

// MannWhitneyU runs the two-sided test of x against y
func MannWhitneyU(x, y []float64, opts Options) (Result, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return Result{}, ErrEmptySample
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return Result{}, ErrNaN
		}
	}
	for _, v := range y {
		if math.IsNaN(v) {
			return Result{}, ErrNaN
		}
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks, tieTerm := rankData(pooled)

	var r1 float64
	for _, r := range ranks[:n1] {
		r1 += r
	}
	fn1, fn2 := float64(n1), float64(n2)
	u1 := r1 - fn1*(fn1+1)/2
	u2 := fn1*fn2 - u1

	res := Result{U1: u1, U2: u2, N1: n1, N2: n2, HasTies: tieTerm > 0}

	method, err := resolveMethod(opts.Method, n1, n2, res.HasTies)
	if err != nil {
		return Result{}, err
	}
	if method == MethodExact && opts.Method != MethodExact &&
		exactWork(n1, n2, int(math.Min(u1, u2))) > exactWorkLimit {
		method = MethodAsymptotic
	}
	res.Method = method

	mu := fn1 * fn2 / 2
	sigma := tieCorrectedSigma(n1, n2, tieTerm)
	if sigma > 0 {
		res.Z = (u1 - mu) / sigma
	}

	switch method {
	case MethodExact:
		// the null distribution is symmetric: P(U >= max) = P(U <= min)
		cdf, err := exactCDF(math.Min(u1, u2), n1, n2)
		if err != nil {
			return Result{}, err
		}
		res.PValue = 2 * cdf
	default:
		res.PValue = asymptoticPValue(math.Max(u1, u2), mu, sigma, opts.UseContinuity)
	}
	res.PValue = math.Min(res.PValue, 1)

	return res, nil
}

func resolveMethod(m Method, n1, n2 int, ties bool) (Method, error) {
	switch m {
	case "", MethodAuto:
		if (n1 > ExactMaxSize && n2 > ExactMaxSize) || ties {
			return MethodAsymptotic, nil
		}
		return MethodExact, nil
	case MethodExact:
		if ties {
			return "", ErrTiesExact
		}
		return MethodExact, nil
	case MethodAsymptotic:
		return MethodAsymptotic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
}

// tieCorrectedSigma is the standard deviation of U under the null hypothesis
func tieCorrectedSigma(n1, n2 int, tieTerm float64) float64 {
	fn1, fn2 := float64(n1), float64(n2)
	n := fn1 + fn2
	v := fn1 * fn2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// asymptoticPValue is 2·P(Z >= z) for z built from the larger U; u >= mu so
// the continuity correction pulls z towards zero
func asymptoticPValue(u, mu, sigma float64, continuity bool) float64 {
	if sigma == 0 {
		return 1
	}
	num := u - mu
	if continuity {
		num -= 0.5
	}
	return 2 * distuv.UnitNormal.Survival(num/sigma)
}
