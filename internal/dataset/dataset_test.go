package dataset

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maldash/domain/core"
)

func buildDataset(t *testing.T) *Dataset {
	t.Helper()
	ds := New("district-weekly")
	require.NoError(t, ds.AddColumn("rainfall_mm", []float64{10, 20, 30, 40}))
	require.NoError(t, ds.AddColumn("incidence_risk", []float64{0.1, 0.2, 0.3, 0.4}))
	return ds
}

func TestAddColumn(t *testing.T) {
	ds := buildDataset(t)

	assert.Equal(t, 4, ds.RowCount())
	assert.Equal(t, 2, ds.MetricCount())
	assert.True(t, ds.HasMetric("rainfall_mm"))
	assert.False(t, ds.HasMetric("missing"))

	err := ds.AddColumn("short", []float64{1, 2})
	assert.ErrorIs(t, err, core.ErrColumnMismatch)

	err = ds.AddColumn("rainfall_mm", []float64{1, 2, 3, 4})
	assert.Error(t, err, "duplicate column must be rejected")

	err = ds.AddColumn("", []float64{1, 2, 3, 4})
	assert.Error(t, err, "empty metric key must be rejected")
}

func TestColumnReturnsCopy(t *testing.T) {
	ds := buildDataset(t)

	col, err := ds.Column("rainfall_mm")
	require.NoError(t, err)

	col[0] = -999
	again, err := ds.Column("rainfall_mm")
	require.NoError(t, err)
	assert.Equal(t, 10.0, again[0], "mutating a returned column must not affect the dataset")
}

func TestPairs(t *testing.T) {
	ds := buildDataset(t)

	samples, err := ds.Pairs("rainfall_mm", "incidence_risk")
	require.NoError(t, err)
	require.Len(t, samples, 4)
	assert.Equal(t, 10.0, samples[0].X)
	assert.Equal(t, 0.1, samples[0].Y)

	_, err = ds.Pairs("rainfall_mm", "missing")
	assert.ErrorIs(t, err, core.ErrMetricNotFound)
}

func TestPairsDropsNonFiniteRows(t *testing.T) {
	ds := New("sparse")
	require.NoError(t, ds.AddColumn("x", []float64{1, math.NaN(), 3, math.Inf(1)}))
	require.NoError(t, ds.AddColumn("y", []float64{2, 4, math.NaN(), 8}))

	samples, err := ds.Pairs("x", "y")
	require.NoError(t, err)
	require.Len(t, samples, 1, "rows with NaN/Inf in either coordinate are dropped")
	assert.Equal(t, 1.0, samples[0].X)
}

func TestFiltered(t *testing.T) {
	ds := buildDataset(t)

	filtered, err := ds.Filtered([]Range{{Metric: "rainfall_mm", Min: 15, Max: 35}})
	require.NoError(t, err)

	assert.Equal(t, 2, filtered.RowCount())
	col, err := filtered.Column("incidence_risk")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.3}, col)

	// original untouched
	assert.Equal(t, 4, ds.RowCount())

	_, err = ds.Filtered([]Range{{Metric: "missing", Min: 0, Max: 1}})
	assert.ErrorIs(t, err, core.ErrMetricNotFound)
}

func TestFingerprintIgnoresColumnOrder(t *testing.T) {
	a := New("a")
	require.NoError(t, a.AddColumn("x", []float64{1, 2}))
	require.NoError(t, a.AddColumn("y", []float64{3, 4}))

	b := New("b")
	require.NoError(t, b.AddColumn("y", []float64{3, 4}))
	require.NoError(t, b.AddColumn("x", []float64{1, 2}))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ds := buildDataset(t)
	require.NoError(t, store.Save(ctx, ds))

	got, err := store.Get(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.Name, got.Name)

	_, err = store.Get(ctx, "nope")
	assert.True(t, errors.Is(err, core.ErrDatasetNotFound))

	manifests, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, 4, manifests[0].RowCount)
}
