package analysis

import (
	"maldash/domain/core"
	"maldash/internal/errors"

	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics for one metric column, feeding gauge
// and filter-panel widgets.
type Summary struct {
	Metric core.MetricKey `json:"metric"`
	Count  int            `json:"count"`
	Mean   float64        `json:"mean"`
	Median float64        `json:"median"`
	StdDev float64        `json:"std_dev"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
	Q25    float64        `json:"q25"`
	Q75    float64        `json:"q75"`
	Latest float64        `json:"latest"`
}

// ComputeSummary computes descriptive statistics for a metric column.
func ComputeSummary(metric core.MetricKey, values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.Wrapf(core.ErrInsufficientData, "summary for %s", metric)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "mean of %s", metric)
	}
	median, err := stats.Median(values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "median of %s", metric)
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "stddev of %s", metric)
	}
	min, err := stats.Min(values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "min of %s", metric)
	}
	max, err := stats.Max(values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "max of %s", metric)
	}

	// Percentile errors only on empty input, which is guarded above; a
	// single-element column yields that element.
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	return Summary{
		Metric: metric,
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Q25:    q25,
		Q75:    q75,
		Latest: values[len(values)-1],
	}, nil
}
