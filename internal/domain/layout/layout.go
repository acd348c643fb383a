// Package layout builds the dashboard's visual tree once at startup.
//
// The tree is plain data: the HTTP layer renders it to HTML and the browser
// turns graph nodes into plotly charts. The only part that changes at
// runtime is the content of the StateGraphID slot, which the browser
// replaces with the figure returned by the state-graph callback.
package layout

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okian/indiacovid/internal/domain/aggregate"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
)

// Kind identifies a node's role in the tree.
type Kind string

// Node kinds, mirroring the bootstrap grid used by the page.
const (
	KindContainer Kind = "container"
	KindRow       Kind = "row"
	KindCol       Kind = "col"
	KindCard      Kind = "card"
	KindCardBody  Kind = "card-body"
	KindHeading   Kind = "heading"
	KindGraph     Kind = "graph"
	KindDropdown  Kind = "dropdown"
)

// Component ids referenced by the callback wiring.
const (
	StatusPickerID = "status-picker"
	StateGraphID   = "state-graph"
)

// DefaultTitle is the page header text.
const DefaultTitle = "Corona Virus - India's Perspective"

// Style is a set of CSS declarations.
type Style map[string]string

// CSS renders the declarations sorted by property name.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(s[k])
	}
	return b.String()
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Node is one element of the visual tree.
type Node struct {
	Kind  Kind
	ID    string
	Style Style

	// Heading
	Level int
	Text  string

	// Col width on the 12 column grid.
	Width int

	// Graph
	Figure *chart.Figure

	// Dropdown
	Options   []Option
	Value     string
	Clearable bool

	Children []*Node
}

// Find returns the first node with id in depth-first order, or nil.
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Input is everything Build needs.
type Input struct {
	Title      string
	Tables     *model.Tables
	Counters   aggregate.Counters
	SeriesMode aggregate.SeriesMode
	// StateGraph fills the reactive slot before the first callback fires.
	StateGraph chart.Figure
}

// Card colors and labels, in display order.
var cards = []struct {
	label string
	color string
	value func(aggregate.Counters) int
}{
	{"Total Cases", "red", func(c aggregate.Counters) int { return c.Total }},
	{"Active", "dodgerblue", func(c aggregate.Counters) int { return c.Active }},
	{"Recovered", "gold", func(c aggregate.Counters) int { return c.Recovered }},
	{"Deaths", "green", func(c aggregate.Counters) int { return c.Deceased }},
}

const (
	gridColumns  = 12
	headerColor  = "#2C3E50"
	rowMarginTop = "20px"
)

// Build assembles the full tree.
func Build(in Input) *Node {
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	tables := in.Tables
	if tables == nil {
		tables = &model.Tables{}
	}

	return &Node{
		Kind: KindContainer,
		Children: []*Node{
			header(title),
			counterRow(in.Counters),
			graphRow(tables, in.SeriesMode),
			stateRow(in.StateGraph),
		},
	}
}

func header(title string) *Node {
	return row(Style{"background-color": headerColor, "padding": "10px"},
		col(gridColumns, &Node{
			Kind:  KindHeading,
			Level: 1,
			Text:  title,
			Style: Style{"text-align": "center", "color": "white"},
		}),
	)
}

func counterRow(c aggregate.Counters) *Node {
	cols := make([]*Node, 0, len(cards))
	for _, item := range cards {
		cols = append(cols, col(gridColumns/len(cards), &Node{
			Kind:  KindCard,
			Style: Style{"background-color": item.color, "text-align": "center"},
			Children: []*Node{{
				Kind: KindCardBody,
				Children: []*Node{
					{Kind: KindHeading, Level: 4, Text: item.label, Style: Style{"color": "white"}},
					{Kind: KindHeading, Level: 2, Text: strconv.Itoa(item.value(c)), Style: Style{"color": "white"}},
				},
			}},
		}))
	}
	return row(Style{"margin-top": rowMarginTop}, cols...)
}

func graphRow(t *model.Tables, mode aggregate.SeriesMode) *Node {
	series := aggregate.DailyConfirmed(t.States, mode)
	line := chart.Line("Day by Day Growth", "Date", "Confirmed", series.Dates, series.Confirmed)

	labels := make([]string, len(t.Age))
	values := make([]int, len(t.Age))
	for i, b := range t.Age {
		labels[i] = b.AgeGroup
		values[i] = b.TotalCases
	}
	pie := chart.Pie("Age Distribution of Cases", labels, values)

	return row(Style{"margin-top": rowMarginTop},
		col(gridColumns/2, card("Day by Day Analysis", &Node{Kind: KindGraph, ID: "daily-graph", Figure: &line})),
		col(gridColumns/2, card("Age Distribution", &Node{Kind: KindGraph, ID: "age-graph", Figure: &pie})),
	)
}

func stateRow(initial chart.Figure) *Node {
	opts := make([]Option, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		opts = append(opts, Option{Label: s.String(), Value: s.String()})
	}
	return row(Style{"margin-top": rowMarginTop},
		col(gridColumns, card("State Total Count",
			&Node{
				Kind:      KindDropdown,
				ID:        StatusPickerID,
				Options:   opts,
				Value:     model.DefaultStatus.String(),
				Clearable: false,
			},
			&Node{Kind: KindGraph, ID: StateGraphID, Figure: &initial},
		)),
	)
}

func row(style Style, children ...*Node) *Node {
	return &Node{Kind: KindRow, Style: style, Children: children}
}

func col(width int, children ...*Node) *Node {
	return &Node{Kind: KindCol, Width: width, Children: children}
}

// card wraps children in a card body headed by an h5 title.
func card(title string, children ...*Node) *Node {
	body := append([]*Node{{Kind: KindHeading, Level: 5, Text: title}}, children...)
	return &Node{
		Kind:     KindCard,
		Children: []*Node{{Kind: KindCardBody, Children: body}},
	}
}
