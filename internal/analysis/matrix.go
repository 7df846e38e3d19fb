package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"maldash/domain/core"
	domstats "maldash/domain/stats"
	"maldash/internal/dataset"
)

// Matrix is a symmetric pairwise correlation matrix over a dataset's
// metrics. R[i][j] is Pearson's r between Metrics[i] and Metrics[j];
// N[i][j] is the finite-pair count the cell was computed from.
type Matrix struct {
	DatasetID core.DatasetID   `json:"dataset_id"`
	Metrics   []core.MetricKey `json:"metrics"`
	R         [][]float64      `json:"r"`
	N         [][]int          `json:"n"`
}

// ComputeMatrix runs the pairwise sweep. Cells are independent pure
// computations, so they run concurrently, bounded by workers. The diagonal
// is 1 by definition (0 for columns with fewer than two finite rows, where
// no correlation exists even with itself).
func ComputeMatrix(ctx context.Context, ds *dataset.Dataset, workers int) (*Matrix, error) {
	metrics := ds.Metrics()
	size := len(metrics)

	m := &Matrix{
		DatasetID: ds.ID,
		Metrics:   metrics,
		R:         make([][]float64, size),
		N:         make([][]int, size),
	}
	for i := range m.R {
		m.R[i] = make([]float64, size)
		m.N[i] = make([]int, size)
	}

	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			i, j := i, j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				samples, err := ds.Pairs(metrics[i], metrics[j])
				if err != nil {
					return err
				}
				result := domstats.ComputeCorrelation(samples)

				r := result.Correlation
				if i == j && result.SampleSize >= 2 {
					r = 1
				}
				// Each goroutine writes a disjoint pair of cells.
				m.R[i][j], m.R[j][i] = r, r
				m.N[i][j], m.N[j][i] = result.SampleSize, result.SampleSize
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// Strongest returns the off-diagonal pair with the largest |r|, for the
// "top correlation" dashboard callout. ok is false for matrices with fewer
// than two metrics.
func (m *Matrix) Strongest() (x, y core.MetricKey, r float64, ok bool) {
	best := -1.0
	for i := range m.Metrics {
		for j := i + 1; j < len(m.Metrics); j++ {
			abs := m.R[i][j]
			if abs < 0 {
				abs = -abs
			}
			if abs > best {
				best = abs
				x, y, r, ok = m.Metrics[i], m.Metrics[j], m.R[i][j], true
			}
		}
	}
	return x, y, r, ok
}
