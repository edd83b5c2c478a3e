package stats

import (
	"math"
	"strings"
)

// SignificanceLevel is the fixed alpha for the significance flag
const SignificanceLevel = 0.05

// TestTypeMannWhitney is the label written to reports
const TestTypeMannWhitney = "Mann-Whitney U Test"

// Effect size methods. EffectSizePInverse recovers z from the two-sided
// p-value as Φ⁻¹(p/2); EffectSizeRankZ uses the rank-sum z directly.
const (
	EffectSizePInverse = "p-inverse"
	EffectSizeRankZ    = "rank-z"
)

// EffectMagnitude is the qualitative reading of an effect size r
type EffectMagnitude string

const (
	MagnitudeNegligible EffectMagnitude = "negligible"
	MagnitudeSmall      EffectMagnitude = "small"
	MagnitudeMedium     EffectMagnitude = "medium"
	MagnitudeLarge      EffectMagnitude = "large"
)

// InterpretEffectSize applies Cohen's thresholds for r; lower bounds are inclusive
func InterpretEffectSize(r float64) EffectMagnitude {
	r = math.Abs(r)
	switch {
	case r < 0.10:
		return MagnitudeNegligible
	case r < 0.30:
		return MagnitudeSmall
	case r < 0.50:
		return MagnitudeMedium
	default:
		return MagnitudeLarge
	}
}

// Label is the report wording, e.g. "Large effect"
func (m EffectMagnitude) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:]) + " effect"
}

// TestResult is the outcome of one two-sided Mann-Whitney U comparison
type TestResult struct {
	TestType   string  `json:"test_type"`
	UStatistic float64 `json:"u_statistic"` // U for the first group
	PValue     float64 `json:"p_value"`
	Z          float64 `json:"z"` // rank-sum z, tie corrected, no continuity correction
	Method     string  `json:"method"`
	N1         int     `json:"n1"`
	N2         int     `json:"n2"`

	EffectSize         float64         `json:"effect_size"`
	EffectSizeMethod   string          `json:"effect_size_method"`
	EffectSizePInverse float64         `json:"effect_size_p_inverse"`
	EffectSizeRankZ    float64         `json:"effect_size_rank_z"`
	Magnitude          EffectMagnitude `json:"magnitude"`
	Significant        bool            `json:"significant"`
}

// SignificantLabel renders the flag as Yes/No
func (r *TestResult) SignificantLabel() string {
	if r.Significant {
		return "Yes"
	}
	return "No"
}

// DescriptiveStats summarises one group sample
type DescriptiveStats struct {
	Count  int     `json:"count"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // sample (n-1); NaN when Count < 2
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// DescriptiveRow is one line of the comparison table
type DescriptiveRow struct {
	Statistic string
	Group1    float64
	Group2    float64
}

// Summary is everything a reporter needs for one run
type Summary struct {
	Group1Name string           `json:"group1_name"`
	Group2Name string           `json:"group2_name"`
	Result     TestResult       `json:"result"`
	Group1     DescriptiveStats `json:"group1"`
	Group2     DescriptiveStats `json:"group2"`
}

// DescriptiveTable lays the two groups out side by side in report order
func (s *Summary) DescriptiveTable() []DescriptiveRow {
	return []DescriptiveRow{
		{"Count", float64(s.Group1.Count), float64(s.Group2.Count)},
		{"Median", s.Group1.Median, s.Group2.Median},
		{"Mean", s.Group1.Mean, s.Group2.Mean},
		{"Std Dev", s.Group1.StdDev, s.Group2.StdDev},
		{"25th Percentile", s.Group1.Q25, s.Group2.Q25},
		{"75th Percentile", s.Group1.Q75, s.Group2.Q75},
	}
}
