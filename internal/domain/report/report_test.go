package report_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/selection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given a selection of two skills", t, func() {
		sel := selection.Selection{
			Budget: 30,
			Groups: 2,
			Chosen: []selection.Chosen{
				{Skill: model.Skill{Name: "A"}, Cost: 10, Rating: 50},
				{Skill: model.Skill{Name: "B"}, Cost: 15, Rating: 60},
			},
		}

		Convey("When aggregated with a penalty of -30", func() {
			gatekept := model.Skill{Type: model.Purple, Name: "Gatekept", RatingBase: 30, Enabled: true}
			r := report.Aggregate(sel, -30, gatekept)

			Convey("Then totals include the penalty", func() {
				So(r.UsedCost, ShouldEqual, 25)
				So(r.SelectionRating, ShouldEqual, 110)
				So(r.Penalty, ShouldEqual, -30)
				So(r.TotalRating, ShouldEqual, 80)
				So(r.Count, ShouldEqual, 2)
				So(r.Efficiency, ShouldAlmostEqual, 3.2)
				So(r.Budget, ShouldEqual, 30)
				So(r.Penalties, ShouldHaveLength, 1)
				So(r.Penalties[0].Name, ShouldEqual, "Gatekept")
			})

			Convey("And the run carries a UUID", func() {
				_, err := uuid.Parse(r.RunID)
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given an empty selection", t, func() {
		r := report.Aggregate(selection.Selection{Budget: 10}, -12)

		Convey("Then efficiency is 0 and the penalty still counts", func() {
			So(r.UsedCost, ShouldEqual, 0)
			So(r.Efficiency, ShouldEqual, 0)
			So(r.TotalRating, ShouldEqual, -12)
			So(r.Chosen, ShouldNotBeNil)
			So(r.Count, ShouldEqual, 0)
			So(r.Penalties, ShouldNotBeNil)
			So(r.Penalties, ShouldBeEmpty)
		})
	})
}
