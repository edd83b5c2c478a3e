package analysis

import (
	"fmt"

	"gomwu/domain/stats"
	"gomwu/internal"
	"gomwu/internal/errors"
	"gomwu/internal/ranksum"
)

// EngineOptions configures the test engine
type EngineOptions struct {
	Method           ranksum.Method
	UseContinuity    bool
	EffectSizeMethod string
}

// DefaultEngineOptions returns auto method, continuity correction and the
// p-inverse effect size
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Method:           ranksum.MethodAuto,
		UseContinuity:    true,
		EffectSizeMethod: stats.EffectSizePInverse,
	}
}

// TestEngine runs the Mann-Whitney U test and derives the effect size
type TestEngine struct {
	opts   EngineOptions
	logger *internal.Logger
}

// NewTestEngine creates a test engine. A nil logger discards output.
func NewTestEngine(opts EngineOptions, logger *internal.Logger) *TestEngine {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	if opts.EffectSizeMethod == "" {
		opts.EffectSizeMethod = stats.EffectSizePInverse
	}
	return &TestEngine{opts: opts, logger: logger}
}

// Compute tests group 1 against group 2
func (e *TestEngine) Compute(samples *GroupSamples) (*stats.TestResult, error) {
	if samples == nil {
		return nil, errors.InvalidInput("no samples to compare")
	}
	if len(samples.Group1) == 0 {
		return nil, errors.EmptySample(samples.Group1Name)
	}
	if len(samples.Group2) == 0 {
		return nil, errors.EmptySample(samples.Group2Name)
	}

	res, err := ranksum.MannWhitneyU(samples.Group1, samples.Group2, ranksum.Options{
		Method:        e.opts.Method,
		UseContinuity: e.opts.UseContinuity,
	})
	if err != nil {
		return nil, errors.ComputationError("mann-whitney u test failed", err)
	}

	n := samples.Total()
	result := &stats.TestResult{
		TestType:           stats.TestTypeMannWhitney,
		UStatistic:         res.U1,
		PValue:             res.PValue,
		Z:                  res.Z,
		Method:             string(res.Method),
		N1:                 res.N1,
		N2:                 res.N2,
		EffectSizeMethod:   e.opts.EffectSizeMethod,
		EffectSizePInverse: EffectSizeFromP(res.PValue, n),
		EffectSizeRankZ:    EffectSizeFromZ(res.Z, n),
		Significant:        res.PValue < stats.SignificanceLevel,
	}

	switch e.opts.EffectSizeMethod {
	case stats.EffectSizePInverse:
		result.EffectSize = result.EffectSizePInverse
	case stats.EffectSizeRankZ:
		result.EffectSize = result.EffectSizeRankZ
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown effect size method %q", e.opts.EffectSizeMethod))
	}
	result.Magnitude = stats.InterpretEffectSize(result.EffectSize)

	e.logger.Debug("[TestEngine] %s: U=%.4f p=%.6g z=%.4f r=%.4f (%s) n1=%d n2=%d",
		res.Method, res.U1, res.PValue, res.Z, result.EffectSize, result.EffectSizeMethod, res.N1, res.N2)

	return result, nil
}

// Summarize describes both groups and bundles them with the test result
func Summarize(samples *GroupSamples, result *stats.TestResult) (*stats.Summary, error) {
	g1, err := Describe(samples.Group1)
	if err != nil {
		return nil, errors.Wrapf(err, "describe %q", samples.Group1Name)
	}
	g2, err := Describe(samples.Group2)
	if err != nil {
		return nil, errors.Wrapf(err, "describe %q", samples.Group2Name)
	}
	return &stats.Summary{
		Group1Name: samples.Group1Name,
		Group2Name: samples.Group2Name,
		Result:     *result,
		Group1:     g1,
		Group2:     g2,
	}, nil
}
