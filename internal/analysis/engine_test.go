package analysis

import (
	"math"
	"testing"

	"gomwu/domain/stats"
	"gomwu/internal/errors"
	"gomwu/internal/ranksum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(from, to int) []float64 {
	out := make([]float64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, float64(i))
	}
	return out
}

func samplesOf(g1, g2 []float64) *GroupSamples {
	return &GroupSamples{Group1Name: "Control", Group2Name: "Treatment", Group1: g1, Group2: g2}
}

func TestTestEngine_IdenticalSamples(t *testing.T) {
	engine := NewTestEngine(DefaultEngineOptions(), nil)

	res, err := engine.Compute(samplesOf(seq(1, 6), seq(1, 6)))
	require.NoError(t, err)

	assert.Equal(t, stats.TestTypeMannWhitney, res.TestType)
	assert.Equal(t, 1.0, res.PValue)
	assert.InDelta(t, 0, res.EffectSize, 1e-12)
	assert.Equal(t, stats.MagnitudeNegligible, res.Magnitude)
	assert.False(t, res.Significant)
	assert.Equal(t, "No", res.SignificantLabel())
}

func TestTestEngine_SeparatedSamplesAreSignificant(t *testing.T) {
	engine := NewTestEngine(DefaultEngineOptions(), nil)

	res, err := engine.Compute(samplesOf(seq(1, 5), seq(10, 14)))
	require.NoError(t, err)

	assert.Equal(t, string(ranksum.MethodExact), res.Method)
	assert.Less(t, res.PValue, 0.05)
	assert.True(t, res.Significant)
	assert.Equal(t, "Yes", res.SignificantLabel())
	assert.InDelta(t, 0.8395085184262314, res.EffectSize, 1e-9)
}

func TestTestEngine_TenVersusTen(t *testing.T) {
	engine := NewTestEngine(DefaultEngineOptions(), nil)

	res, err := engine.Compute(samplesOf(seq(1, 10), seq(11, 20)))
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.UStatistic)
	assert.Less(t, res.PValue, 0.001)
	assert.True(t, res.Significant)
	assert.Equal(t, stats.MagnitudeLarge, res.Magnitude)
	assert.Equal(t, stats.EffectSizePInverse, res.EffectSizeMethod)
	assert.InDelta(t, 0.8367027121812314, res.EffectSizePInverse, 1e-9)
	assert.InDelta(t, 0.8451542547285166, res.EffectSizeRankZ, 1e-9)
	assert.Equal(t, res.EffectSizePInverse, res.EffectSize)
	assert.Equal(t, 10, res.N1)
	assert.Equal(t, 10, res.N2)
}

func TestTestEngine_RankZEffectSize(t *testing.T) {
	opts := DefaultEngineOptions()
	opts.EffectSizeMethod = stats.EffectSizeRankZ
	engine := NewTestEngine(opts, nil)

	res, err := engine.Compute(samplesOf(seq(1, 10), seq(11, 20)))
	require.NoError(t, err)
	assert.Equal(t, res.EffectSizeRankZ, res.EffectSize)
	assert.Equal(t, stats.EffectSizeRankZ, res.EffectSizeMethod)
}

func TestTestEngine_UnknownEffectSizeMethod(t *testing.T) {
	opts := DefaultEngineOptions()
	opts.EffectSizeMethod = "cliffs-delta"
	_, err := NewTestEngine(opts, nil).Compute(samplesOf(seq(1, 3), seq(4, 6)))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestTestEngine_EmptySample(t *testing.T) {
	engine := NewTestEngine(DefaultEngineOptions(), nil)

	_, err := engine.Compute(samplesOf(nil, seq(1, 3)))
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmptySample, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Control")

	_, err = engine.Compute(nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestTestEngine_ExactWithTiesIsComputationError(t *testing.T) {
	opts := DefaultEngineOptions()
	opts.Method = ranksum.MethodExact
	_, err := NewTestEngine(opts, nil).Compute(samplesOf([]float64{1, 2, 2}, []float64{2, 3}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeComputationError, errors.GetCode(err))
	assert.ErrorIs(t, err, ranksum.ErrTiesExact)
}

func TestTestEngine_ExactTooLargeIsComputationError(t *testing.T) {
	g1, g2 := make([]float64, 520), make([]float64, 520)
	for i := range g1 {
		g1[i] = float64(2*i + 1)
		g2[i] = float64(2*i + 2)
	}
	opts := DefaultEngineOptions()
	opts.Method = ranksum.MethodExact

	res, err := NewTestEngine(opts, nil).Compute(samplesOf(g1, g2))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, errors.CodeComputationError, errors.GetCode(err))
	assert.ErrorIs(t, err, ranksum.ErrExactTooLarge)
}

func TestTestEngine_SmallVersusLargeSeparatedStaysPositive(t *testing.T) {
	res, err := NewTestEngine(DefaultEngineOptions(), nil).Compute(samplesOf(seq(1, 8), seq(9, 1008)))
	require.NoError(t, err)

	assert.Equal(t, string(ranksum.MethodExact), res.Method)
	assert.InEpsilon(t, 7.779649466922164e-20, res.PValue, 1e-9)
	assert.True(t, res.Significant)
	assert.False(t, math.IsNaN(res.EffectSize))
}

func TestEffectSizeFromP(t *testing.T) {
	assert.Equal(t, 0.0, EffectSizeFromP(1, 20))
	assert.Equal(t, 0.0, EffectSizeFromP(0.01, 0))

	// p = 0.05 two-sided corresponds to |z| = 1.959964
	assert.InDelta(t, 1.959963984540054/math.Sqrt(16), EffectSizeFromP(0.05, 16), 1e-9)

	// underflowed p stays finite
	r := EffectSizeFromP(0, 100)
	assert.False(t, math.IsInf(r, 0))
	assert.Greater(t, r, 3.0)
}

func TestSummarize(t *testing.T) {
	samples := samplesOf([]float64{1, 2, 3, 4, 5}, []float64{6, 7, 8, 9, 10})
	res, err := NewTestEngine(DefaultEngineOptions(), nil).Compute(samples)
	require.NoError(t, err)

	summary, err := Summarize(samples, res)
	require.NoError(t, err)
	assert.Equal(t, "Control", summary.Group1Name)
	assert.Equal(t, 3.0, summary.Group1.Median)
	assert.Equal(t, 8.0, summary.Group2.Median)
	assert.Equal(t, res.PValue, summary.Result.PValue)
}
