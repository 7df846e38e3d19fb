package viewstate

import (
	"maldash/domain/core"
)

// Tab identifies a dashboard tab
type Tab string

const (
	TabOverview    Tab = "overview"
	TabTrends      Tab = "trends"
	TabComposition Tab = "composition"
	TabCorrelation Tab = "correlation"
)

// KnownTabs lists every valid tab.
var KnownTabs = []Tab{TabOverview, TabTrends, TabComposition, TabCorrelation}

// MetricFilter restricts a metric column to [Min, Max] when Enabled.
type MetricFilter struct {
	Metric  core.MetricKey `json:"metric"`
	Min     float64        `json:"min"`
	Max     float64        `json:"max"`
	Enabled bool           `json:"enabled"`
}

// ScatterAxes selects the metrics driving the scatter widget. SizeMetric is
// optional; when empty every bubble uses the fallback radius.
type ScatterAxes struct {
	X    core.MetricKey `json:"x"`
	Y    core.MetricKey `json:"y"`
	Size core.MetricKey `json:"size,omitempty"`
}

// ViewState is the serializable UI state for one dashboard session. It is a
// plain value transitioned by discrete events (see Apply); no widget or
// rendering concern leaks into it.
type ViewState struct {
	Session        core.SessionID          `json:"session"`
	DatasetID      core.DatasetID          `json:"dataset_id"`
	ActiveTab      Tab                     `json:"active_tab"`
	SeriesDisabled map[core.MetricKey]bool `json:"series_disabled,omitempty"`
	Filters        []MetricFilter          `json:"filters,omitempty"`
	Scatter        ScatterAxes             `json:"scatter"`
	DrillDownPath  []string                `json:"drill_down_path,omitempty"`
	UpdatedAt      core.Timestamp          `json:"updated_at"`
}

// NewViewState creates the initial state for a session: overview tab, all
// series enabled, no filters, no drill-down.
func NewViewState(session core.SessionID, datasetID core.DatasetID) ViewState {
	return ViewState{
		Session:   session,
		DatasetID: datasetID,
		ActiveTab: TabOverview,
		UpdatedAt: core.Now(),
	}
}

// SeriesEnabled reports whether a metric series is currently shown.
// Series are enabled by default; only explicit toggles disable them.
func (v ViewState) SeriesEnabled(metric core.MetricKey) bool {
	return !v.SeriesDisabled[metric]
}

// EnabledFilters returns only the filters that are switched on.
func (v ViewState) EnabledFilters() []MetricFilter {
	out := make([]MetricFilter, 0, len(v.Filters))
	for _, f := range v.Filters {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// clone deep-copies the state so Apply never mutates its input.
func (v ViewState) clone() ViewState {
	out := v
	if v.SeriesDisabled != nil {
		out.SeriesDisabled = make(map[core.MetricKey]bool, len(v.SeriesDisabled))
		for k, val := range v.SeriesDisabled {
			out.SeriesDisabled[k] = val
		}
	}
	out.Filters = append([]MetricFilter(nil), v.Filters...)
	out.DrillDownPath = append([]string(nil), v.DrillDownPath...)
	return out
}
