package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretEffectSize_Boundaries(t *testing.T) {
	cases := []struct {
		r    float64
		want EffectMagnitude
	}{
		{0, MagnitudeNegligible},
		{0.099, MagnitudeNegligible},
		{0.10, MagnitudeSmall},
		{0.299, MagnitudeSmall},
		{0.30, MagnitudeMedium},
		{0.499, MagnitudeMedium},
		{0.50, MagnitudeLarge},
		{0.93, MagnitudeLarge},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InterpretEffectSize(tc.r), "r=%v", tc.r)
	}
}

func TestEffectMagnitude_Label(t *testing.T) {
	assert.Equal(t, "Negligible effect", MagnitudeNegligible.Label())
	assert.Equal(t, "Small effect", MagnitudeSmall.Label())
	assert.Equal(t, "Medium effect", MagnitudeMedium.Label())
	assert.Equal(t, "Large effect", MagnitudeLarge.Label())
	assert.Equal(t, "", EffectMagnitude("").Label())
}

func TestSummary_DescriptiveTableOrder(t *testing.T) {
	s := Summary{
		Group1: DescriptiveStats{Count: 3, Median: 2, Mean: 2, StdDev: 1, Q25: 1.5, Q75: 2.5},
		Group2: DescriptiveStats{Count: 4, Median: 5, Mean: 5.5, StdDev: 2, Q25: 4, Q75: 7},
	}
	rows := s.DescriptiveTable()
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Statistic
	}
	assert.Equal(t, []string{"Count", "Median", "Mean", "Std Dev", "25th Percentile", "75th Percentile"}, names)
	assert.Equal(t, 3.0, rows[0].Group1)
	assert.Equal(t, 4.0, rows[0].Group2)
	assert.Equal(t, 7.0, rows[5].Group2)
}
