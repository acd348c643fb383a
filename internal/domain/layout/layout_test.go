package layout_test

import (
	"testing"

	"github.com/okian/indiacovid/internal/domain/aggregate"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/layout"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/internal/domain/statusbar"
	. "github.com/smartystreets/goconvey/convey"
)

func tables() *model.Tables {
	return &model.Tables{
		Age: []model.AgeGroupBucket{{AgeGroup: "0-9", TotalCases: 22}, {AgeGroup: "10-19", TotalCases: 27}},
		States: []model.StateTimeSeriesRow{
			{Date: "30/01/20", State: "Kerala", Confirmed: 1},
			{Date: "31/01/20", State: "Kerala", Confirmed: 1},
			{Date: "31/01/20", State: "Delhi", Confirmed: 2},
		},
		Individuals: []model.IndividualRecord{
			{Status: model.StatusHospitalized, DetectedState: "Delhi"},
			{Status: model.StatusRecovered, DetectedState: "Kerala"},
		},
	}
}

func headings(n *layout.Node, level int) []string {
	var out []string
	n.Walk(func(c *layout.Node) {
		if c.Kind == layout.KindHeading && c.Level == level {
			out = append(out, c.Text)
		}
	})
	return out
}

func TestBuild(t *testing.T) {
	Convey("Given loaded tables and counters", t, func() {
		tb := tables()
		counters := aggregate.Compute(tb.Individuals)
		initial := statusbar.New(tb.Individuals).Render()

		root := layout.Build(layout.Input{
			Tables:     tb,
			Counters:   counters,
			SeriesMode: aggregate.SeriesAggregate,
			StateGraph: initial,
		})

		Convey("Then the header should carry the default title", func() {
			So(headings(root, 1), ShouldResemble, []string{layout.DefaultTitle})
			So(root.Children[0].Style.CSS(), ShouldEqual, "background-color:#2C3E50;padding:10px")
		})

		Convey("And four counter cards should appear in order with their values", func() {
			So(headings(root, 4), ShouldResemble, []string{"Total Cases", "Active", "Recovered", "Deaths"})
			So(headings(root, 2), ShouldResemble, []string{"2", "1", "1", "0"})

			var colors []string
			for _, c := range root.Children[1].Children {
				So(c.Width, ShouldEqual, 3)
				colors = append(colors, c.Children[0].Style["background-color"])
			}
			So(colors, ShouldResemble, []string{"red", "dodgerblue", "gold", "green"})
		})

		Convey("And the static charts should be built from the tables", func() {
			daily := root.Find("daily-graph")
			So(daily, ShouldNotBeNil)
			So(daily.Figure.Data[0].Type, ShouldEqual, chart.TypeScatter)
			So(daily.Figure.Data[0].X, ShouldResemble, []string{"30/01/20", "31/01/20"})
			So(daily.Figure.Data[0].Y, ShouldResemble, []int{1, 3})

			age := root.Find("age-graph")
			So(age.Figure.Data[0].Labels, ShouldResemble, []string{"0-9", "10-19"})
			So(age.Figure.Data[0].Values, ShouldResemble, []int{22, 27})
			So(headings(root, 5), ShouldResemble, []string{"Day by Day Analysis", "Age Distribution", "State Total Count"})
		})

		Convey("And the dropdown should offer the three statuses, not clearable", func() {
			dd := root.Find(layout.StatusPickerID)
			So(dd, ShouldNotBeNil)
			So(dd.Kind, ShouldEqual, layout.KindDropdown)
			So(dd.Options, ShouldHaveLength, 3)
			So(dd.Options[0], ShouldResemble, layout.Option{Label: "Hospitalized", Value: "Hospitalized"})
			So(dd.Value, ShouldEqual, "Hospitalized")
			So(dd.Clearable, ShouldBeFalse)
		})

		Convey("And the reactive slot should hold the initial figure", func() {
			slot := root.Find(layout.StateGraphID)
			So(slot, ShouldNotBeNil)
			So(slot.Figure.Layout.Title.Text, ShouldEqual, "State wise Hospitalized Count")
			So(slot.Figure.Data[0].X, ShouldResemble, []string{"Delhi"})
		})
	})

	Convey("Given row mode and a custom title", t, func() {
		root := layout.Build(layout.Input{Title: "Dashboard", Tables: tables(), SeriesMode: aggregate.SeriesRows})

		Convey("Then the line should plot every row", func() {
			So(root.Find("daily-graph").Figure.Points(), ShouldEqual, 3)
			So(headings(root, 1), ShouldResemble, []string{"Dashboard"})
		})
	})

	Convey("Given no tables at all", t, func() {
		root := layout.Build(layout.Input{})

		Convey("Then it should still build with zero counters and empty charts", func() {
			So(headings(root, 2), ShouldResemble, []string{"0", "0", "0", "0"})
			So(root.Find("age-graph").Figure.Points(), ShouldEqual, 0)
			So(root.Find("missing"), ShouldBeNil)
		})
	})
}

func TestStyleCSS(t *testing.T) {
	Convey("Given styles", t, func() {
		Convey("Then declarations should be sorted and joined", func() {
			So(layout.Style{"color": "white", "background-color": "red"}.CSS(), ShouldEqual, "background-color:red;color:white")
			So(layout.Style(nil).CSS(), ShouldEqual, "")
		})
	})
}
