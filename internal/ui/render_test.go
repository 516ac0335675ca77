package ui_test

import (
	"bytes"
	"testing"

	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/selection"
	"github.com/okian/skillbudget/internal/domain/types"
	"github.com/okian/skillbudget/internal/ingest"
	"github.com/okian/skillbudget/internal/ui"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderCatalog(t *testing.T) {
	Convey("Given records from two categories", t, func() {
		skills := []types.SkillView{
			{Index: 0, Type: model.Yellow, Name: "Mile Corners", Variant: model.Base, Aptitude: grade.Mile, Tier: grade.TierBC, Rating: 195, SPCost: 160},
			{Index: 1, Type: model.Yellow, Name: "Mile Maven", Variant: model.Gold, Aptitude: grade.Mile, Rating: 69},
			{Index: 2, Type: model.Purple, Name: "Gatekept", Variant: model.Base, Rating: -30, Enabled: true},
		}
		var buf bytes.Buffer
		So(ui.RenderCatalog(&buf, skills), ShouldBeNil)
		out := buf.String()

		Convey("Then each category gets a titled table", func() {
			So(out, ShouldContainSubstring, "Yellow (2)")
			So(out, ShouldContainSubstring, "Purple (1)")
			So(out, ShouldContainSubstring, "Mile (B-C)")
			So(out, ShouldContainSubstring, "Mile Maven")
			So(out, ShouldContainSubstring, "-30")
			So(out, ShouldContainSubstring, "160")
		})
	})

	Convey("Given no records", t, func() {
		var buf bytes.Buffer
		So(ui.RenderCatalog(&buf, nil), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "catalog is empty")
	})
}

func TestRenderReport(t *testing.T) {
	Convey("Given a report", t, func() {
		sel := selection.Selection{Budget: 25, Groups: 2, Chosen: []selection.Chosen{
			{Skill: model.Skill{Type: model.Yellow, Name: "Alpha", Variant: model.Base}, Cost: 10, Rating: 50},
			{Skill: model.Skill{Type: model.Yellow, Name: "Beta", Variant: model.Base}, Cost: 15, Rating: 60},
		}}
		r := report.Aggregate(sel, -30, model.Skill{Type: model.Purple, Name: "Gatekept", RatingBase: 30, Enabled: true})
		var buf bytes.Buffer
		So(ui.RenderReport(&buf, r), ShouldBeNil)
		out := buf.String()

		Convey("Then chosen records and totals are shown", func() {
			So(out, ShouldContainSubstring, "Alpha")
			So(out, ShouldContainSubstring, "Beta")
			So(out, ShouldContainSubstring, "25 (2 skills)")
			So(out, ShouldContainSubstring, "80")
			So(out, ShouldContainSubstring, r.RunID)
		})

		Convey("Then the penalty names its records", func() {
			So(out, ShouldContainSubstring, "-30")
			So(out, ShouldContainSubstring, "(Gatekept)")
		})

		Convey("Then the chosen records sit in a bordered table", func() {
			So(out, ShouldContainSubstring, "╭")
			So(out, ShouldContainSubstring, "Rating")
		})
	})
}

func TestRenderOutcomes(t *testing.T) {
	Convey("Given mixed ingestion outcomes", t, func() {
		var buf bytes.Buffer
		So(ui.RenderOutcomes(&buf, []ingest.Outcome{
			{Type: model.Yellow, Status: ingest.StatusOK},
			{Type: model.Red, Status: ingest.StatusWarning, Message: "unrecognized document shape"},
		}), ShouldBeNil)

		Convey("Then only the problems are listed", func() {
			So(buf.String(), ShouldNotContainSubstring, "Yellow")
			So(buf.String(), ShouldContainSubstring, "Red")
			So(buf.String(), ShouldContainSubstring, "unrecognized document shape")
			So(buf.String(), ShouldContainSubstring, "Detail")
		})
	})

	Convey("Given only clean outcomes", t, func() {
		var buf bytes.Buffer
		So(ui.RenderOutcomes(&buf, []ingest.Outcome{{Type: model.Green, Status: ingest.StatusOK}}), ShouldBeNil)
		So(buf.String(), ShouldBeEmpty)
	})
}
