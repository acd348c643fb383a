package model_test

import (
	"testing"

	model "github.com/okian/indiacovid/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	convey.Convey("Given the dropdown statuses", t, func() {
		statuses := model.Statuses()

		convey.Convey("Then they should be the three options in display order", func() {
			convey.So(statuses, convey.ShouldResemble, []model.Status{
				model.StatusHospitalized, model.StatusRecovered, model.StatusDeceased,
			})
			convey.So(model.DefaultStatus, convey.ShouldEqual, model.StatusHospitalized)
		})

		convey.Convey("And every option should be valid", func() {
			for _, s := range statuses {
				convey.So(s.Valid(), convey.ShouldBeTrue)
			}
		})
	})

	convey.Convey("Given values outside the option set", t, func() {
		convey.Convey("Then they should parse but not be valid", func() {
			convey.So(model.ParseStatus(" Migrated ").Valid(), convey.ShouldBeFalse)
			convey.So(model.ParseStatus("").Valid(), convey.ShouldBeFalse)
			convey.So(model.ParseStatus("deceased").Valid(), convey.ShouldBeFalse)
		})

		convey.Convey("And parsing should keep the value exactly", func() {
			convey.So(model.ParseStatus("  Recovered\t"), convey.ShouldNotEqual, model.StatusRecovered)
			convey.So(model.ParseStatus("  Recovered\t").Valid(), convey.ShouldBeFalse)
			convey.So(model.ParseStatus("Recovered"), convey.ShouldEqual, model.StatusRecovered)
			convey.So(model.ParseStatus("Recovered").String(), convey.ShouldEqual, "Recovered")
		})

		convey.Convey("And only the empty status should be blank", func() {
			convey.So(model.ParseStatus("").Blank(), convey.ShouldBeTrue)
			convey.So(model.ParseStatus(" ").Blank(), convey.ShouldBeFalse)
			convey.So(model.StatusDeceased.Blank(), convey.ShouldBeFalse)
		})
	})
}
