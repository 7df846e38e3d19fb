package render

import (
	"maldash/domain/core"
	"maldash/domain/stats"
)

// ChartKind tags a render node variant
type ChartKind string

const (
	ChartGauge   ChartKind = "gauge"
	ChartLine    ChartKind = "line"
	ChartPie     ChartKind = "pie"
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
)

// Node is a tagged chart variant: Kind selects which payload pointer is set.
// Nodes carry chart-ready data only; layout, theming and animation belong to
// the rendering client.
type Node struct {
	Kind    ChartKind    `json:"kind"`
	Title   string       `json:"title"`
	Gauge   *GaugeNode   `json:"gauge,omitempty"`
	Line    *LineNode    `json:"line,omitempty"`
	Pie     *PieNode     `json:"pie,omitempty"`
	Bar     *BarNode     `json:"bar,omitempty"`
	Scatter *ScatterNode `json:"scatter,omitempty"`
}

// GaugeNode shows one metric's current level against its observed range.
type GaugeNode struct {
	Metric core.MetricKey `json:"metric"`
	Value  float64        `json:"value"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
	Mean   float64        `json:"mean"`
}

// LineNode holds one polyline per enabled series over the shared row index.
type LineNode struct {
	Series []LineSeries `json:"series"`
}

// LineSeries is a single named polyline.
type LineSeries struct {
	Metric core.MetricKey `json:"metric"`
	Points []Point        `json:"points"`
}

// Point is an (x, y) vertex in chart space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PieNode shows each enabled metric's share of the summed totals.
type PieNode struct {
	Slices []PieSlice `json:"slices"`
}

// PieSlice is one labeled share.
type PieSlice struct {
	Metric  core.MetricKey `json:"metric"`
	Value   float64        `json:"value"`
	Percent float64        `json:"percent"`
}

// BarNode compares per-metric means side by side.
type BarNode struct {
	Bars []Bar `json:"bars"`
}

// Bar is one labeled column.
type Bar struct {
	Metric core.MetricKey `json:"metric"`
	Value  float64        `json:"value"`
}

// ScatterNode is the correlation widget payload: the paired points with
// normalized bubble radii, the computed statistics, and the fitted trend
// line's endpoints.
type ScatterNode struct {
	XMetric     core.MetricKey          `json:"x_metric"`
	YMetric     core.MetricKey          `json:"y_metric"`
	SizeMetric  core.MetricKey          `json:"size_metric,omitempty"`
	Points      []ScatterPoint          `json:"points"`
	Correlation stats.CorrelationResult `json:"correlation"`
	Strength    stats.Strength          `json:"strength"`
	Direction   stats.Direction         `json:"direction"`
	TrendStart  *Point                  `json:"trend_start,omitempty"`
	TrendEnd    *Point                  `json:"trend_end,omitempty"`
	Annotation  string                  `json:"annotation"`
}

// ScatterPoint is one bubble.
type ScatterPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// RenderTree is the full declarative output for one dashboard view.
type RenderTree struct {
	DatasetID     core.DatasetID `json:"dataset_id"`
	ActiveTab     string         `json:"active_tab"`
	DrillDownPath []string       `json:"drill_down_path,omitempty"`
	Nodes         []Node         `json:"nodes"`
	GeneratedAt   core.Timestamp `json:"generated_at"`
}
