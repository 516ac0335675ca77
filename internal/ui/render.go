package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/types"
	"github.com/okian/skillbudget/internal/ingest"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = H2.Padding(0, 1)
)

// newTable lays rows out under a styled header with a muted rounded border.
func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

// aptitudeLabel renders "Mile (B-C)" for an aptitude skill rated at a tier.
func aptitudeLabel(v types.SkillView) string {
	switch {
	case v.Aptitude == "":
		return Muted.Render("-")
	case v.Tier != "":
		return fmt.Sprintf("%s (%s)", v.Aptitude, v.Tier)
	default:
		return string(v.Aptitude)
	}
}

func variantLabel(v model.Variant) string {
	if v == model.Gold {
		return Gold.Render(string(v))
	}
	return string(v)
}

// RenderCatalog writes one table per category in the order the records
// arrive.
func RenderCatalog(w io.Writer, skills []types.SkillView) error {
	var order []model.SkillType
	byType := map[model.SkillType][][]string{}
	for _, s := range skills {
		if _, ok := byType[s.Type]; !ok {
			order = append(order, s.Type)
		}
		cost := Muted.Render("-")
		if s.SPCost > 0 {
			cost = fmt.Sprint(s.SPCost)
		}
		if s.Type.IsPenalty() {
			cost = Muted.Render("off")
			if s.Enabled {
				cost = Bad.Render("on")
			}
		}
		byType[s.Type] = append(byType[s.Type], []string{
			fmt.Sprint(s.Index), s.Name, variantLabel(s.Variant), aptitudeLabel(s), Rating(s.Rating), cost,
		})
	}
	if len(order) == 0 {
		_, err := fmt.Fprintln(w, Muted.Render("catalog is empty"))
		return err
	}
	for _, t := range order {
		title := fmt.Sprintf("%s (%d)", t, len(byType[t]))
		body := newTable([]string{"#", "Name", "Variant", "Aptitude", "Rating", "SP"}, byType[t])
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", Heading(title), body); err != nil {
			return err
		}
	}
	return nil
}

// RenderOutcomes writes a table of the categories that did not load
// cleanly. Nothing is written when every category loaded.
func RenderOutcomes(w io.Writer, outcomes []ingest.Outcome) error {
	var rows [][]string
	for _, o := range outcomes {
		if o.Status == ingest.StatusOK {
			continue
		}
		rows = append(rows, []string{string(o.Type), StatusText(o.Status), Muted.Render(o.Message)})
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, newTable([]string{"Type", "Status", "Detail"}, rows))
	return err
}

// RenderReport writes the optimize result: the chosen records and a summary
// panel.
func RenderReport(w io.Writer, r report.Report) error {
	rows := make([][]string, 0, len(r.Chosen))
	for _, c := range r.Chosen {
		v := types.SkillView{Aptitude: c.Skill.Aptitude, Tier: c.Tier}
		rows = append(rows, []string{
			string(c.Skill.Type), c.Skill.Name, variantLabel(c.Skill.Variant), aptitudeLabel(v), fmt.Sprint(c.Cost), Rating(c.Rating),
		})
	}

	body := Muted.Render("nothing fits the budget")
	if len(rows) > 0 {
		body = newTable([]string{"Type", "Name", "Variant", "Aptitude", "SP", "Rating"}, rows)
	}

	summary := strings.Join([]string{
		LabelValue("Budget", r.Budget),
		LabelValue("Used", fmt.Sprintf("%d (%d skills)", r.UsedCost, r.Count)),
		LabelValue("Selection", Rating(r.SelectionRating)),
		LabelValue("Penalty", penaltyLabel(r)),
		LabelValue("Total", Good.Render(fmt.Sprintf("%.0f", r.TotalRating))),
		LabelValue("Rating/SP", fmt.Sprintf("%.3f", r.Efficiency)),
		Muted.Render("run " + r.RunID),
	}, "\n")

	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n", Heading("Best purchase set"), body, Panel.Render(summary))
	return err
}

// penaltyLabel renders the penalty with the records it came from.
func penaltyLabel(r report.Report) string {
	if len(r.Penalties) == 0 {
		return Rating(r.Penalty)
	}
	names := make([]string, len(r.Penalties))
	for i, p := range r.Penalties {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s %s", Rating(r.Penalty), Muted.Render("("+strings.Join(names, ", ")+")"))
}
