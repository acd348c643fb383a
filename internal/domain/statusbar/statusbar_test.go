package statusbar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/internal/domain/statusbar"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []model.IndividualRecord {
	return []model.IndividualRecord{
		{Status: model.StatusDeceased, DetectedState: "Kerala"},
		{Status: model.StatusDeceased, DetectedState: "Kerala"},
		{Status: model.StatusDeceased, DetectedState: "Delhi"},
		{Status: model.StatusRecovered, DetectedState: "Kerala"},
		{Status: model.StatusHospitalized, DetectedState: "Delhi"},
		{Status: model.StatusHospitalized, DetectedState: "Maharashtra"},
		{Status: model.StatusHospitalized, DetectedState: "Maharashtra"},
		{Status: "Migrated", DetectedState: "Punjab"},
	}
}

func TestRecompute(t *testing.T) {
	Convey("Given deceased, recovered and hospitalized records", t, func() {
		records := fixture()

		Convey("When selecting Deceased", func() {
			counts := statusbar.Recompute(records, model.StatusDeceased)

			Convey("Then bars should be Kerala:2, Delhi:1", func() {
				So(counts, ShouldResemble, []statusbar.StateCount{
					{State: "Kerala", Count: 2},
					{State: "Delhi", Count: 1},
				})
			})
		})

		Convey("When selecting Hospitalized", func() {
			counts := statusbar.Recompute(records, model.StatusHospitalized)

			Convey("Then higher counts should come first", func() {
				So(counts, ShouldResemble, []statusbar.StateCount{
					{State: "Maharashtra", Count: 2},
					{State: "Delhi", Count: 1},
				})
			})
		})

		Convey("When summing bar heights for every status", func() {
			Convey("Then the sum should equal the matching record count", func() {
				for _, s := range append(model.Statuses(), "Migrated") {
					want := 0
					for _, r := range records {
						if r.Status == s {
							want++
						}
					}
					got := 0
					for _, c := range statusbar.Recompute(records, s) {
						got += c.Count
					}
					So(got, ShouldEqual, want)
				}
			})
		})

		Convey("When recomputing twice", func() {
			Convey("Then results should be identical", func() {
				for _, s := range model.Statuses() {
					first := statusbar.Figure(s, statusbar.Recompute(records, s))
					second := statusbar.Figure(s, statusbar.Recompute(records, s))
					So(cmp.Diff(first, second), ShouldBeEmpty)
				}
			})
		})
	})

	Convey("Given a status with no matching records", t, func() {
		records := []model.IndividualRecord{{Status: model.StatusRecovered, DetectedState: "Kerala"}}

		Convey("Then the chart should have zero bars", func() {
			counts := statusbar.Recompute(records, model.StatusDeceased)
			So(counts, ShouldBeEmpty)
			f := statusbar.Figure(model.StatusDeceased, counts)
			So(f.Points(), ShouldEqual, 0)
		})

		Convey("And an unknown status should behave the same", func() {
			f := statusbar.Figure("Quarantined", statusbar.Recompute(records, "Quarantined"))
			So(f.Points(), ShouldEqual, 0)
			So(f.Layout.Title.Text, ShouldEqual, "State wise Quarantined Count")
		})
	})

	Convey("Given a record whose status cell was empty", t, func() {
		records := []model.IndividualRecord{
			{Status: model.StatusDeceased, DetectedState: "Kerala"},
			{Status: "", DetectedState: "Delhi"},
		}

		Convey("Then a blank status should match nothing", func() {
			So(statusbar.Recompute(records, ""), ShouldBeEmpty)
		})

		Convey("And a padded status should not match its trimmed value", func() {
			So(statusbar.Recompute(records, " Deceased "), ShouldBeEmpty)
			So(statusbar.Recompute(records, model.StatusDeceased), ShouldResemble, []statusbar.StateCount{
				{State: "Kerala", Count: 1},
			})
		})
	})

	Convey("Given an empty table", t, func() {
		Convey("Then every status should yield zero bars", func() {
			for _, s := range model.Statuses() {
				So(statusbar.Recompute(nil, s), ShouldBeEmpty)
			}
		})
	})
}

func TestComponent(t *testing.T) {
	Convey("Given a new component", t, func() {
		c := statusbar.New(fixture())

		Convey("Then it should start at Hospitalized", func() {
			So(c.Selected(), ShouldEqual, model.StatusHospitalized)
			So(c.Render().Layout.Title.Text, ShouldEqual, "State wise Hospitalized Count")
		})

		Convey("Then the stateless path should draw the same charts", func() {
			So(cmp.Diff(c.Render(), statusbar.Figure(model.DefaultStatus, statusbar.Recompute(fixture(), model.DefaultStatus))), ShouldBeEmpty)
			for _, s := range model.Statuses() {
				stateless := statusbar.Figure(s, statusbar.Recompute(fixture(), s))
				So(cmp.Diff(statusbar.New(fixture()).Select(s), stateless), ShouldBeEmpty)
			}
		})

		Convey("When selecting Deceased", func() {
			f := c.Select(model.StatusDeceased)

			Convey("Then the state and chart should follow", func() {
				So(c.Selected(), ShouldEqual, model.StatusDeceased)
				So(f.Data[0].X, ShouldResemble, []string{"Kerala", "Delhi"})
				So(f.Data[0].Y, ShouldResemble, []int{2, 1})
				So(f.Layout.XAxis.TickAngle, ShouldEqual, statusbar.XTickAngle)
			})

			Convey("And re-selecting Deceased should recompute the same chart", func() {
				again := c.Select(model.StatusDeceased)
				So(c.Selected(), ShouldEqual, model.StatusDeceased)
				So(cmp.Diff(f, again), ShouldBeEmpty)
			})
		})

		Convey("When cycling through every state", func() {
			Convey("Then each transition should be accepted", func() {
				for _, s := range []model.Status{model.StatusRecovered, model.StatusHospitalized, model.StatusDeceased, model.StatusRecovered} {
					c.Select(s)
					So(c.Selected(), ShouldEqual, s)
				}
			})
		})
	})
}
