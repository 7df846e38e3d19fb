package analysis

import (
	"math"

	domstats "maldash/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// Significance computes the two-sided p-value of a fitted correlation under
// the t-distribution with n-2 degrees of freedom. It returns nil when the
// fit is statistically meaningless: fewer than three samples, a degenerate
// zero-variance fit, or |r| = 1 (where the t statistic diverges). This is
// the caller-side confidence signal; ComputeCorrelation itself never
// attaches a p-value.
func Significance(result domstats.CorrelationResult) *float64 {
	n := result.SampleSize
	r := result.Correlation
	if n < 3 {
		return nil
	}
	if r == 0 || math.Abs(r) >= 1 {
		return nil
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return &p
}

// WithSignificance returns a copy of the result with the p-value attached
// when one can be computed.
func WithSignificance(result domstats.CorrelationResult) domstats.CorrelationResult {
	result.PValue = Significance(result)
	return result
}
