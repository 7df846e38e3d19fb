package stats

import "math"

// CorrelationResult holds descriptive correlation and regression statistics
// for a set of paired samples. It is a pure derived value: it keeps no
// reference to its source samples and is safe to discard and recompute.
//
// INVARIANTS:
// - Correlation always in [-1, 1]
// - RSquared == Correlation * Correlation
// - PValue is nil unless attached by a significance helper
type CorrelationResult struct {
	Correlation float64  `json:"correlation"`
	RSquared    float64  `json:"r_squared"`
	Slope       float64  `json:"slope"`
	Intercept   float64  `json:"intercept"`
	SampleSize  int      `json:"sample_size"`
	PValue      *float64 `json:"p_value,omitempty"`
}

// ComputeCorrelation computes Pearson's r, the least-squares fit
// y = Slope*x + Intercept, and R² for the given samples.
//
// The function is total: it never errors. Fewer than two samples yield the
// zero result with SampleSize 0, and zero-variance inputs (all x equal, or
// all y equal) degrade to Correlation 0 and/or Slope 0 instead of dividing
// by zero. A dashboard must always be able to render "no correlation" for
// sparse or constant data.
//
// Non-finite inputs are not guarded here; callers feeding measured data
// should drop NaN/Inf pairs before calling (see internal/dataset).
func ComputeCorrelation(samples []Sample) CorrelationResult {
	n := len(samples)
	if n < 2 {
		// No fit is meaningful with fewer than two points.
		return CorrelationResult{}
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.X
		sumY += s.Y
	}
	xMean := sumX / float64(n)
	yMean := sumY / float64(n)

	var numerator, xSumSq, ySumSq float64
	for _, s := range samples {
		xDiff := s.X - xMean
		yDiff := s.Y - yMean
		numerator += xDiff * yDiff
		xSumSq += xDiff * xDiff
		ySumSq += yDiff * yDiff
	}

	var correlation float64
	if denominator := math.Sqrt(xSumSq * ySumSq); denominator != 0 {
		correlation = numerator / denominator
	}

	var slope float64
	if xSumSq != 0 {
		slope = numerator / xSumSq
	}

	return CorrelationResult{
		Correlation: correlation,
		RSquared:    correlation * correlation,
		Slope:       slope,
		Intercept:   yMean - slope*xMean,
		SampleSize:  n,
	}
}

// Strength returns the qualitative strength band for the result's r.
func (r CorrelationResult) Strength() Strength {
	return StrengthLabel(r.Correlation)
}

// Direction returns the qualitative direction for the result's r.
func (r CorrelationResult) Direction() Direction {
	return DirectionLabel(r.Correlation)
}

// TrendY evaluates the fitted line at x.
func (r CorrelationResult) TrendY(x float64) float64 {
	return r.Slope*x + r.Intercept
}
