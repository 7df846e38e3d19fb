package viewstate

import (
	"fmt"

	"maldash/domain/core"
)

// EventKind tags a discrete UI event
type EventKind string

const (
	EventSelectTab     EventKind = "select_tab"
	EventToggleSeries  EventKind = "toggle_series"
	EventSetFilter     EventKind = "set_filter"
	EventClearFilter   EventKind = "clear_filter"
	EventSelectScatter EventKind = "select_scatter"
	EventDrillDown     EventKind = "drill_down"
	EventDrillUp       EventKind = "drill_up"
	EventReset         EventKind = "reset"
)

// Event is a tagged union of UI interactions; exactly the fields for its
// Kind are expected to be set.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Tab     Tab            `json:"tab,omitempty"`
	Metric  core.MetricKey `json:"metric,omitempty"`
	Filter  *MetricFilter  `json:"filter,omitempty"`
	Scatter *ScatterAxes   `json:"scatter,omitempty"`
	Section string         `json:"section,omitempty"`
}

// Apply transitions a view state with one event and returns the new state.
// It is a pure function: the input state is never mutated, and the same
// (state, event) always yields the same result apart from UpdatedAt.
func Apply(state ViewState, event Event) (ViewState, error) {
	next := state.clone()

	switch event.Kind {
	case EventSelectTab:
		if !validTab(event.Tab) {
			return state, fmt.Errorf("%w: tab %q", core.ErrInvalidEvent, event.Tab)
		}
		next.ActiveTab = event.Tab

	case EventToggleSeries:
		if event.Metric.String() == "" {
			return state, fmt.Errorf("%w: toggle_series requires a metric", core.ErrInvalidEvent)
		}
		if next.SeriesDisabled == nil {
			next.SeriesDisabled = make(map[core.MetricKey]bool)
		}
		if next.SeriesDisabled[event.Metric] {
			delete(next.SeriesDisabled, event.Metric)
		} else {
			next.SeriesDisabled[event.Metric] = true
		}

	case EventSetFilter:
		if event.Filter == nil || event.Filter.Metric.String() == "" {
			return state, fmt.Errorf("%w: set_filter requires a filter with a metric", core.ErrInvalidEvent)
		}
		if event.Filter.Min > event.Filter.Max {
			return state, fmt.Errorf("%w: filter min %v > max %v",
				core.ErrInvalidEvent, event.Filter.Min, event.Filter.Max)
		}
		next.Filters = upsertFilter(next.Filters, *event.Filter)

	case EventClearFilter:
		if event.Metric.String() == "" {
			return state, fmt.Errorf("%w: clear_filter requires a metric", core.ErrInvalidEvent)
		}
		next.Filters = removeFilter(next.Filters, event.Metric)

	case EventSelectScatter:
		if event.Scatter == nil || event.Scatter.X.String() == "" || event.Scatter.Y.String() == "" {
			return state, fmt.Errorf("%w: select_scatter requires x and y metrics", core.ErrInvalidEvent)
		}
		next.Scatter = *event.Scatter

	case EventDrillDown:
		if event.Section == "" {
			return state, fmt.Errorf("%w: drill_down requires a section", core.ErrInvalidEvent)
		}
		next.DrillDownPath = append(next.DrillDownPath, event.Section)

	case EventDrillUp:
		if len(next.DrillDownPath) > 0 {
			next.DrillDownPath = next.DrillDownPath[:len(next.DrillDownPath)-1]
		}

	case EventReset:
		next = NewViewState(state.Session, state.DatasetID)
		return next, nil

	default:
		return state, fmt.Errorf("%w: %q", core.ErrUnknownEvent, event.Kind)
	}

	next.UpdatedAt = core.Now()
	return next, nil
}

func validTab(tab Tab) bool {
	for _, known := range KnownTabs {
		if tab == known {
			return true
		}
	}
	return false
}

func upsertFilter(filters []MetricFilter, filter MetricFilter) []MetricFilter {
	for i, f := range filters {
		if f.Metric == filter.Metric {
			filters[i] = filter
			return filters
		}
	}
	return append(filters, filter)
}

func removeFilter(filters []MetricFilter, metric core.MetricKey) []MetricFilter {
	out := filters[:0]
	for _, f := range filters {
		if f.Metric != metric {
			out = append(out, f)
		}
	}
	return out
}
