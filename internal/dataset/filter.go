package dataset

import (
	"fmt"
	"math"

	"maldash/domain/core"
)

// Range restricts a metric to [Min, Max]. Use -Inf/+Inf for open ends.
type Range struct {
	Metric core.MetricKey `json:"metric"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
}

// Contains reports whether v falls inside the range. NaN never matches.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= r.Min && v <= r.Max
}

// Filtered returns a new dataset containing only the rows for which every
// range matches. The receiver is not modified; column order is preserved.
func (d *Dataset) Filtered(ranges []Range) (*Dataset, error) {
	for _, r := range ranges {
		if !d.HasMetric(r.Metric) {
			return nil, fmt.Errorf("%w: filter metric %s", core.ErrMetricNotFound, r.Metric)
		}
	}

	keep := make([]int, 0, d.rows)
rows:
	for i := 0; i < d.rows; i++ {
		for _, r := range ranges {
			if !r.Contains(d.columns[r.Metric][i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}

	filtered := &Dataset{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		columns:     make(map[core.MetricKey][]float64, len(d.metrics)),
		rows:        len(keep),
	}
	filtered.metrics = d.Metrics()
	for _, key := range d.metrics {
		src := d.columns[key]
		col := make([]float64, len(keep))
		for j, idx := range keep {
			col[j] = src[idx]
		}
		filtered.columns[key] = col
	}
	return filtered, nil
}
