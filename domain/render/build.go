package render

import (
	"fmt"

	"maldash/domain/core"
	"maldash/domain/stats"
	"maldash/domain/viewstate"
)

// MetricSeries is one metric column handed to the builder. Values are the
// filtered rows for the current view; the builder never re-filters.
type MetricSeries struct {
	Key    core.MetricKey
	Values []float64
}

// Data is everything the builder needs: the filtered series of the current
// dataset plus the paired samples and raw bubble sizes for the scatter
// selection (extracted upstream by the input provider).
type Data struct {
	DatasetID      core.DatasetID
	Series         []MetricSeries
	ScatterSamples []stats.Sample
	BubbleSizes    []float64 // raw sizes, same order as ScatterSamples; may be nil
}

// BuildRenderTree maps (view state, data) onto a declarative chart tree.
// Pure apart from the GeneratedAt stamp: no I/O, no mutation of inputs.
// Disabled series are omitted everywhere; the scatter node appears only on
// the correlation tab with a valid axis selection.
func BuildRenderTree(view viewstate.ViewState, data Data) RenderTree {
	tree := RenderTree{
		DatasetID:     data.DatasetID,
		ActiveTab:     string(view.ActiveTab),
		DrillDownPath: append([]string(nil), view.DrillDownPath...),
		GeneratedAt:   core.Now(),
	}

	enabled := make([]MetricSeries, 0, len(data.Series))
	for _, s := range data.Series {
		if view.SeriesEnabled(s.Key) {
			enabled = append(enabled, s)
		}
	}

	switch view.ActiveTab {
	case viewstate.TabOverview:
		for _, s := range enabled {
			if node, ok := buildGauge(s); ok {
				tree.Nodes = append(tree.Nodes, node)
			}
		}
		if node, ok := buildBar(enabled); ok {
			tree.Nodes = append(tree.Nodes, node)
		}
	case viewstate.TabTrends:
		if node, ok := buildLine(enabled); ok {
			tree.Nodes = append(tree.Nodes, node)
		}
	case viewstate.TabComposition:
		if node, ok := buildPie(enabled); ok {
			tree.Nodes = append(tree.Nodes, node)
		}
	case viewstate.TabCorrelation:
		if node, ok := buildScatter(view.Scatter, data); ok {
			tree.Nodes = append(tree.Nodes, node)
		}
	}

	return tree
}

func buildGauge(s MetricSeries) (Node, bool) {
	if len(s.Values) == 0 {
		return Node{}, false
	}

	min, max, sum := s.Values[0], s.Values[0], 0.0
	for _, v := range s.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	return Node{
		Kind:  ChartGauge,
		Title: s.Key.String(),
		Gauge: &GaugeNode{
			Metric: s.Key,
			Value:  s.Values[len(s.Values)-1],
			Min:    min,
			Max:    max,
			Mean:   sum / float64(len(s.Values)),
		},
	}, true
}

func buildLine(series []MetricSeries) (Node, bool) {
	node := LineNode{}
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		points := make([]Point, len(s.Values))
		for i, v := range s.Values {
			points[i] = Point{X: float64(i), Y: v}
		}
		node.Series = append(node.Series, LineSeries{Metric: s.Key, Points: points})
	}
	if len(node.Series) == 0 {
		return Node{}, false
	}
	return Node{Kind: ChartLine, Title: "Trends", Line: &node}, true
}

func buildPie(series []MetricSeries) (Node, bool) {
	node := PieNode{}
	total := 0.0
	for _, s := range series {
		sum := 0.0
		for _, v := range s.Values {
			sum += v
		}
		if sum > 0 {
			node.Slices = append(node.Slices, PieSlice{Metric: s.Key, Value: sum})
			total += sum
		}
	}
	if total == 0 {
		return Node{}, false
	}
	for i := range node.Slices {
		node.Slices[i].Percent = node.Slices[i].Value / total * 100
	}
	return Node{Kind: ChartPie, Title: "Composition", Pie: &node}, true
}

func buildBar(series []MetricSeries) (Node, bool) {
	node := BarNode{}
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		sum := 0.0
		for _, v := range s.Values {
			sum += v
		}
		node.Bars = append(node.Bars, Bar{Metric: s.Key, Value: sum / float64(len(s.Values))})
	}
	if len(node.Bars) == 0 {
		return Node{}, false
	}
	return Node{Kind: ChartBar, Title: "Metric means", Bar: &node}, true
}

func buildScatter(axes viewstate.ScatterAxes, data Data) (Node, bool) {
	if axes.X.String() == "" || axes.Y.String() == "" {
		return Node{}, false
	}

	result := stats.ComputeCorrelation(data.ScatterSamples)

	var radii []float64
	if len(data.BubbleSizes) == len(data.ScatterSamples) && len(data.BubbleSizes) > 0 {
		radii = stats.NormalizeBubbleSizes(data.BubbleSizes)
	}

	points := make([]ScatterPoint, len(data.ScatterSamples))
	for i, s := range data.ScatterSamples {
		radius := stats.FallbackBubbleRadius
		if radii != nil {
			radius = radii[i]
		}
		points[i] = ScatterPoint{X: s.X, Y: s.Y, Radius: radius}
	}

	node := ScatterNode{
		XMetric:     axes.X,
		YMetric:     axes.Y,
		SizeMetric:  axes.Size,
		Points:      points,
		Correlation: result,
		Strength:    result.Strength(),
		Direction:   result.Direction(),
		Annotation:  FormatAnnotation(result),
	}

	// Trend line only when the fit is meaningful: at least two points and
	// some spread in x. Constant y still gets a horizontal line at the mean.
	if result.SampleSize >= 2 {
		xMin, xMax := data.ScatterSamples[0].X, data.ScatterSamples[0].X
		for _, s := range data.ScatterSamples[1:] {
			if s.X < xMin {
				xMin = s.X
			}
			if s.X > xMax {
				xMax = s.X
			}
		}
		if xMax > xMin {
			node.TrendStart = &Point{X: xMin, Y: result.TrendY(xMin)}
			node.TrendEnd = &Point{X: xMax, Y: result.TrendY(xMax)}
		}
	}

	title := fmt.Sprintf("%s vs %s", axes.X, axes.Y)
	return Node{Kind: ChartScatter, Title: title, Scatter: &node}, true
}

// FormatAnnotation renders the statistics panel text for a scatter widget,
// e.g. "r = 0.873, R² = 0.762 (Very Strong, Positive correlation)". The
// degenerate result reads "r = 0.000, R² = 0.000 (Very Weak, No correlation)".
func FormatAnnotation(result stats.CorrelationResult) string {
	direction := "No"
	switch result.Direction() {
	case stats.DirectionPositive:
		direction = "Positive"
	case stats.DirectionNegative:
		direction = "Negative"
	}
	return fmt.Sprintf("r = %.3f, R² = %.3f (%s, %s correlation)",
		result.Correlation, result.RSquared, result.Strength(), direction)
}
