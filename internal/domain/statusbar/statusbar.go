// Package statusbar implements the dashboard's only dynamic element: the
// state-wise bar chart driven by the status dropdown.
//
// The component has exactly three states (the dropdown options), starts at
// model.DefaultStatus and never terminates. Every selection that reaches the
// component, including one that repeats the current value, recomputes the
// chart from the immutable individual records.
package statusbar

import (
	"fmt"
	"sort"

	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
)

// XTickAngle rotates the state names so long labels stay readable.
const XTickAngle = -45

// StateCount is one bar: a detected state and its record count.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// Recompute filters records to status and counts them per detected state.
// Bars are ordered by count descending; ties keep the order in which the
// state first appears in the table. Matching is exact, and a blank status
// never matches, so it and any status matching nothing yield no bars.
func Recompute(records []model.IndividualRecord, status model.Status) []StateCount {
	index := make(map[string]int)
	counts := []StateCount{}
	if status.Blank() {
		return counts
	}
	for _, r := range records {
		if r.Status != status {
			continue
		}
		i, ok := index[r.DetectedState]
		if !ok {
			i = len(counts)
			index[r.DetectedState] = i
			counts = append(counts, StateCount{State: r.DetectedState})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// Title is the chart title for status.
func Title(status model.Status) string {
	return fmt.Sprintf("State wise %s Count", status)
}

// Figure renders counts as the bar chart for status.
func Figure(status model.Status, counts []StateCount) chart.Figure {
	x := make([]string, len(counts))
	y := make([]int, len(counts))
	for i, c := range counts {
		x[i] = c.State
		y[i] = c.Count
	}
	return chart.Bar(Title(status), "State", "Count", x, y, XTickAngle)
}

// Component holds one selection over a shared record table. The records are
// never modified; a Component is not safe for concurrent Select calls.
//
// The server keeps no selection: it renders the initial chart with
// New(records).Render() and answers each callback with the stateless
// Recompute and Figure, since the browser's dropdown holds the current
// status. Select and Selected model the same transitions for callers that
// do hold one session's state.
type Component struct {
	records  []model.IndividualRecord
	selected model.Status
}

// New creates a component in its initial state.
func New(records []model.IndividualRecord) *Component {
	return &Component{records: records, selected: model.DefaultStatus}
}

// Selected returns the current state.
func (c *Component) Selected() model.Status {
	return c.selected
}

// Select transitions to status and returns the replacement chart.
func (c *Component) Select(status model.Status) chart.Figure {
	c.selected = status
	return c.Render()
}

// Render recomputes the chart for the current state.
func (c *Component) Render() chart.Figure {
	return Figure(c.selected, Recompute(c.records, c.selected))
}
