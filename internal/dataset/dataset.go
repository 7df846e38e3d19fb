package dataset

import (
	"fmt"
	"math"

	"maldash/domain/core"
	"maldash/domain/stats"
)

// Dataset is an in-memory table of named numeric metric columns sharing one
// row index (one row per observation unit, e.g. a district-week). It is the
// input provider for the correlation engine: rendering layers never touch
// raw columns directly, they extract paired samples via Pairs.
type Dataset struct {
	ID          core.DatasetID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"` // markdown methodology notes
	CreatedAt   core.Timestamp `json:"created_at"`

	metrics []core.MetricKey
	columns map[core.MetricKey][]float64
	rows    int
}

// New creates an empty dataset with a fresh ID.
func New(name string) *Dataset {
	return &Dataset{
		ID:        core.DatasetID(core.NewID()),
		Name:      name,
		CreatedAt: core.Now(),
		columns:   make(map[core.MetricKey][]float64),
	}
}

// AddColumn appends a metric column. Every column must have the same length
// as the first one added.
func (d *Dataset) AddColumn(key core.MetricKey, values []float64) error {
	if key.String() == "" {
		return core.NewValidationError("metric", "key cannot be empty")
	}
	if _, exists := d.columns[key]; exists {
		return core.NewValidationError("metric", fmt.Sprintf("duplicate column %s", key))
	}
	if len(d.metrics) > 0 && len(values) != d.rows {
		return fmt.Errorf("%w: column %s has %d rows, dataset has %d",
			core.ErrColumnMismatch, key, len(values), d.rows)
	}

	owned := make([]float64, len(values))
	copy(owned, values)

	if len(d.metrics) == 0 {
		d.rows = len(values)
	}
	d.metrics = append(d.metrics, key)
	d.columns[key] = owned
	return nil
}

// Metrics returns the metric keys in insertion order.
func (d *Dataset) Metrics() []core.MetricKey {
	out := make([]core.MetricKey, len(d.metrics))
	copy(out, d.metrics)
	return out
}

// HasMetric reports whether the dataset contains the given column.
func (d *Dataset) HasMetric(key core.MetricKey) bool {
	_, ok := d.columns[key]
	return ok
}

// Column returns a copy of the named column.
func (d *Dataset) Column(key core.MetricKey) ([]float64, error) {
	values, ok := d.columns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, key)
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// RowCount returns the number of rows shared by all columns.
func (d *Dataset) RowCount() int { return d.rows }

// MetricCount returns the number of metric columns.
func (d *Dataset) MetricCount() int { return len(d.metrics) }

// Fingerprint identifies the dataset shape for cache keys and manifests.
func (d *Dataset) Fingerprint() core.DatasetFingerprint {
	return core.ComputeDatasetFingerprint(d.metrics, d.rows)
}

// Pairs extracts the (x, y) samples for two metric columns. Rows where
// either value is NaN or infinite are dropped, so the correlation engine
// only ever sees finite pairs.
func (d *Dataset) Pairs(x, y core.MetricKey) ([]stats.Sample, error) {
	xs, ok := d.columns[x]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, x)
	}
	ys, ok := d.columns[y]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, y)
	}

	samples := make([]stats.Sample, 0, len(xs))
	for i := range xs {
		s := stats.Sample{X: xs[i], Y: ys[i]}
		if s.IsFinite() {
			samples = append(samples, s)
		}
	}
	return samples, nil
}

// PairsWithSize extracts (x, y) samples together with the aligned raw
// bubble sizes from a third metric. Rows are kept only when x, y and the
// size value are all finite, so samples and sizes stay index-aligned. An
// empty size key degrades to Pairs with no sizes.
func (d *Dataset) PairsWithSize(x, y, size core.MetricKey) ([]stats.Sample, []float64, error) {
	if size.String() == "" {
		samples, err := d.Pairs(x, y)
		return samples, nil, err
	}

	xs, ok := d.columns[x]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, x)
	}
	ys, ok := d.columns[y]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, y)
	}
	sizes, ok := d.columns[size]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrMetricNotFound, size)
	}

	samples := make([]stats.Sample, 0, len(xs))
	rawSizes := make([]float64, 0, len(xs))
	for i := range xs {
		s := stats.Sample{X: xs[i], Y: ys[i]}
		if s.IsFinite() && !math.IsNaN(sizes[i]) && !math.IsInf(sizes[i], 0) {
			samples = append(samples, s)
			rawSizes = append(rawSizes, sizes[i])
		}
	}
	return samples, rawSizes, nil
}

// Manifest summarizes the dataset for listings and API responses.
type Manifest struct {
	ID          core.DatasetID          `json:"id"`
	Name        string                  `json:"name"`
	Metrics     []core.MetricKey        `json:"metrics"`
	RowCount    int                     `json:"row_count"`
	Fingerprint core.DatasetFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp          `json:"created_at"`
}

// Manifest builds the dataset's manifest.
func (d *Dataset) Manifest() Manifest {
	return Manifest{
		ID:          d.ID,
		Name:        d.Name,
		Metrics:     d.Metrics(),
		RowCount:    d.rows,
		Fingerprint: d.Fingerprint(),
		CreatedAt:   d.CreatedAt,
	}
}
