package analysis

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"maldash/domain/core"
	domstats "maldash/domain/stats"
	"maldash/internal/dataset"
)

func TestComputeSummary(t *testing.T) {
	summary, err := ComputeSummary("rainfall_mm", []float64{10, 20, 30, 40})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 25.0, summary.Mean, 1e-9)
	assert.InDelta(t, 25.0, summary.Median, 1e-9)
	assert.Equal(t, 10.0, summary.Min)
	assert.Equal(t, 40.0, summary.Max)
	assert.Equal(t, 40.0, summary.Latest)
	assert.True(t, summary.Q25 < summary.Median && summary.Median < summary.Q75)
}

func TestComputeSummary_Empty(t *testing.T) {
	_, err := ComputeSummary("empty", nil)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestSignificance(t *testing.T) {
	// Strong but imperfect correlation over enough points: small p.
	samples := []domstats.Sample{{X: 1, Y: 2.1}, {X: 2, Y: 3.9}, {X: 3, Y: 6.2}, {X: 4, Y: 7.8}, {X: 5, Y: 10.1}, {X: 6, Y: 11.9}}
	result := domstats.ComputeCorrelation(samples)

	p := Significance(result)
	require.NotNil(t, p)
	assert.Greater(t, *p, 0.0)
	assert.Less(t, *p, 0.01)

	attached := WithSignificance(result)
	require.NotNil(t, attached.PValue)
	assert.Equal(t, *p, *attached.PValue)
}

func TestSignificance_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		samples []domstats.Sample
	}{
		{name: "too few points", samples: []domstats.Sample{{X: 1, Y: 2}, {X: 2, Y: 4}}},
		{name: "perfect fit", samples: []domstats.Sample{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}},
		{name: "constant y", samples: []domstats.Sample{{X: 1, Y: 5}, {X: 2, Y: 5}, {X: 3, Y: 5}}},
		{name: "empty", samples: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := domstats.ComputeCorrelation(tt.samples)
			assert.Nil(t, Significance(result))
		})
	}
}

// The engine must agree with gonum's reference implementations on
// well-conditioned data.
func TestEngineAgreesWithGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 25; trial++ {
		n := 10 + rng.Intn(100)
		xs := make([]float64, n)
		ys := make([]float64, n)
		samples := make([]domstats.Sample, n)
		for i := 0; i < n; i++ {
			x := rng.NormFloat64() * 5
			y := 1.5*x + rng.NormFloat64()*2
			xs[i], ys[i] = x, y
			samples[i] = domstats.Sample{X: x, Y: y}
		}

		result := domstats.ComputeCorrelation(samples)

		wantR := stat.Correlation(xs, ys, nil)
		assert.InDelta(t, wantR, result.Correlation, 1e-9)

		wantIntercept, wantSlope := stat.LinearRegression(xs, ys, nil, false)
		assert.InDelta(t, wantSlope, result.Slope, 1e-9)
		assert.InDelta(t, wantIntercept, result.Intercept, 1e-9)
	}
}

func surveillanceDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(3))

	n := 60
	rainfall := make([]float64, n)
	vector := make([]float64, n)
	noise := make([]float64, n)
	for i := 0; i < n; i++ {
		rainfall[i] = 50 + rng.Float64()*150
		vector[i] = 0.4*rainfall[i] + rng.NormFloat64()*5
		noise[i] = rng.NormFloat64()
	}

	ds := dataset.New("surveillance")
	require.NoError(t, ds.AddColumn("rainfall_mm", rainfall))
	require.NoError(t, ds.AddColumn("vector_density", vector))
	require.NoError(t, ds.AddColumn("noise", noise))
	return ds
}

func TestComputeMatrix(t *testing.T) {
	ds := surveillanceDataset(t)

	m, err := ComputeMatrix(context.Background(), ds, 4)
	require.NoError(t, err)

	require.Len(t, m.Metrics, 3)
	for i := range m.Metrics {
		assert.InDelta(t, 1.0, m.R[i][i], 1e-9, "diagonal must be 1")
		for j := range m.Metrics {
			assert.Equal(t, m.R[i][j], m.R[j][i], "matrix must be symmetric")
			assert.Equal(t, 60, m.N[i][j])
			assert.LessOrEqual(t, math.Abs(m.R[i][j]), 1.0+1e-9)
		}
	}

	x, y, r, ok := m.Strongest()
	require.True(t, ok)
	pair := map[core.MetricKey]bool{x: true, y: true}
	assert.True(t, pair["rainfall_mm"] && pair["vector_density"],
		"strongest pair should be rainfall/vector, got %s/%s (r=%v)", x, y, r)
	assert.Greater(t, r, 0.8)
}

func TestComputeMatrix_SingleWorkerMatchesConcurrent(t *testing.T) {
	ds := surveillanceDataset(t)
	ctx := context.Background()

	serial, err := ComputeMatrix(ctx, ds, 1)
	require.NoError(t, err)
	concurrent, err := ComputeMatrix(ctx, ds, 8)
	require.NoError(t, err)

	assert.Equal(t, serial.R, concurrent.R)
	assert.Equal(t, serial.N, concurrent.N)
}

func TestComputeMatrix_Cancelled(t *testing.T) {
	ds := surveillanceDataset(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeMatrix(ctx, ds, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultCache(t *testing.T) {
	cache, err := NewResultCache(8)
	require.NoError(t, err)

	samples := []domstats.Sample{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}
	first := cache.Compute(samples)
	second := cache.Compute(samples)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len(), "identical content must share one entry")

	// Different content gets its own entry and result.
	other := cache.Compute([]domstats.Sample{{X: 1, Y: 8}, {X: 2, Y: 6}, {X: 3, Y: 4}})
	assert.Equal(t, 2, cache.Len())
	assert.Less(t, other.Correlation, 0.0)

	// Same values, different length: distinct key.
	cache.Compute(samples[:2])
	assert.Equal(t, 3, cache.Len())
}

func TestResultCache_MatchesDirectComputation(t *testing.T) {
	cache, err := NewResultCache(4)
	require.NoError(t, err)

	samples := []domstats.Sample{{X: 1.5, Y: 2.25}, {X: 3.7, Y: 1.1}, {X: 0.2, Y: 8.8}}
	assert.Equal(t, domstats.ComputeCorrelation(samples), cache.Compute(samples))
}
