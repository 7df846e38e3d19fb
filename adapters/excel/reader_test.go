package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surveillance.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDataset_CSV(t *testing.T) {
	path := writeCSV(t, "rainfall_mm,incidence_risk\n10,0.1\n20,0.2\n30,0.3\n")

	ds, err := NewDataReader(path).ReadDataset()
	require.NoError(t, err)

	assert.Equal(t, "surveillance", ds.Name)
	assert.Equal(t, 2, ds.MetricCount())
	assert.Equal(t, 3, ds.RowCount())

	col, err := ds.Column("rainfall_mm")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, col)
}

func TestReadDataset_BadCellsBecomeNaN(t *testing.T) {
	path := writeCSV(t, "x,y\n1,2\nn/a,4\n3,6\n4,8\n")

	ds, err := NewDataReader(path).ReadDataset()
	require.NoError(t, err)

	samples, err := ds.Pairs("x", "y")
	require.NoError(t, err)
	assert.Len(t, samples, 3, "row with unparseable x must be dropped at pairing")
}

func TestReadDataset_TextColumnsSkipped(t *testing.T) {
	path := writeCSV(t, "district,rainfall_mm\nnorth,10\nsouth,20\neast,30\n")

	ds, err := NewDataReader(path).ReadDataset()
	require.NoError(t, err)

	assert.Equal(t, 1, ds.MetricCount())
	assert.False(t, ds.HasMetric("district"))
}

func TestReadDataset_Errors(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.csv")).ReadDataset()
	assert.Error(t, err)

	_, err = NewDataReader(writeCSV(t, "only,a,header\n")).ReadDataset()
	assert.Error(t, err)

	_, err = NewDataReader(writeCSV(t, "a,b\nx,y\nz,w\n")).ReadDataset()
	assert.Error(t, err, "all-text files have no metric columns")
}
