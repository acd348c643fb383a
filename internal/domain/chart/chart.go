// Package chart describes figures in the shape plotly.js consumes, so the
// browser can render them with Plotly.newPlot / Plotly.react unchanged.
package chart

// Trace types.
const (
	TypeScatter = "scatter"
	TypePie     = "pie"
	TypeBar     = "bar"
)

// Figure is a complete chart: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotly trace. Cartesian traces use X/Y, pie traces use
// Labels/Values.
type Trace struct {
	Type   string   `json:"type"`
	Mode   string   `json:"mode,omitempty"`
	Name   string   `json:"name,omitempty"`
	X      []string `json:"x"`
	Y      []int    `json:"y"`
	Labels []string `json:"labels,omitempty"`
	Values []int    `json:"values,omitempty"`
}

// Layout holds the figure-level settings the dashboard uses.
type Layout struct {
	Title    Text  `json:"title"`
	XAxis    *Axis `json:"xaxis,omitempty"`
	YAxis    *Axis `json:"yaxis,omitempty"`
	Autosize bool  `json:"autosize"`
}

// Text is a plotly title object.
type Text struct {
	Text string `json:"text"`
}

// Axis is a cartesian axis.
type Axis struct {
	Title     Text `json:"title"`
	TickAngle int  `json:"tickangle,omitempty"`
}

// Line builds a single-line chart.
func Line(title, xTitle, yTitle string, x []string, y []int) Figure {
	return Figure{
		Data: []Trace{{
			Type: TypeScatter,
			Mode: "lines",
			X:    nonNil(x),
			Y:    nonNilInts(y),
		}},
		Layout: Layout{
			Title:    Text{Text: title},
			XAxis:    &Axis{Title: Text{Text: xTitle}},
			YAxis:    &Axis{Title: Text{Text: yTitle}},
			Autosize: true,
		},
	}
}

// Pie builds a pie chart; slice size is the value, slice label the name.
func Pie(title string, labels []string, values []int) Figure {
	return Figure{
		Data: []Trace{{
			Type:   TypePie,
			X:      []string{},
			Y:      []int{},
			Labels: nonNil(labels),
			Values: nonNilInts(values),
		}},
		Layout: Layout{
			Title:    Text{Text: title},
			Autosize: true,
		},
	}
}

// Bar builds a bar chart with x tick labels rotated by tickAngle degrees.
// Empty x/y yield a figure with zero bars.
func Bar(title, xTitle, yTitle string, x []string, y []int, tickAngle int) Figure {
	return Figure{
		Data: []Trace{{
			Type: TypeBar,
			X:    nonNil(x),
			Y:    nonNilInts(y),
		}},
		Layout: Layout{
			Title:    Text{Text: title},
			XAxis:    &Axis{Title: Text{Text: xTitle}, TickAngle: tickAngle},
			YAxis:    &Axis{Title: Text{Text: yTitle}},
			Autosize: true,
		},
	}
}

// Points returns the number of points (bars, line vertices or slices) in
// the first trace.
func (f Figure) Points() int {
	if len(f.Data) == 0 {
		return 0
	}
	t := f.Data[0]
	if t.Type == TypePie {
		return len(t.Values)
	}
	return len(t.Y)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
