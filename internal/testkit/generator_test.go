package testkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domstats "maldash/domain/stats"
)

func TestGenerate_Deterministic(t *testing.T) {
	config := DefaultSurveillanceConfig()

	a, err := NewSurveillanceGenerator(config).Generate()
	require.NoError(t, err)
	b, err := NewSurveillanceGenerator(config).Generate()
	require.NoError(t, err)

	assert.Equal(t, a.RowCount(), b.RowCount())
	for _, metric := range a.Metrics() {
		colA, err := a.Column(metric)
		require.NoError(t, err)
		colB, err := b.Column(metric)
		require.NoError(t, err)
		assert.Equal(t, colA, colB, "metric %s must be seed-deterministic", metric)
	}
}

func TestGenerate_Shape(t *testing.T) {
	ds, err := NewSurveillanceGenerator(SurveillanceConfig{Weeks: 30, Seed: 7, NoiseLevel: 0.1}).Generate()
	require.NoError(t, err)

	assert.Equal(t, 30, ds.RowCount())
	assert.Equal(t, 6, ds.MetricCount())
	assert.True(t, ds.HasMetric("incidence_risk"))

	risk, err := ds.Column("incidence_risk")
	require.NoError(t, err)
	for _, v := range risk {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestGenerate_BuiltInStructure(t *testing.T) {
	ds, err := NewSurveillanceGenerator(DefaultSurveillanceConfig()).Generate()
	require.NoError(t, err)

	samples, err := ds.Pairs("vector_density", "incidence_risk")
	require.NoError(t, err)

	result := domstats.ComputeCorrelation(samples)
	assert.Greater(t, result.Correlation, 0.4,
		"vector density should visibly drive incidence risk")
	assert.Equal(t, domstats.DirectionPositive, result.Direction())
}

func TestNewTestKit(t *testing.T) {
	kit, err := NewTestKit()
	require.NoError(t, err)

	manifests, err := kit.Store().List(context.Background())
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, kit.DemoDatasetID(), manifests[0].ID)
}
