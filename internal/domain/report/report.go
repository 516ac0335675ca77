// Package report combines a selection and a penalty into the final result.
package report

import (
	"github.com/google/uuid"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/selection"
)

// Report is the only optimize output handed to the outer layers.
type Report struct {
	RunID           string             `json:"run_id"`
	Budget          int                `json:"budget"`
	Chosen          []selection.Chosen `json:"chosen"`
	UsedCost        int                `json:"used_cost"`
	SelectionRating float64            `json:"selection_rating"`
	Penalty         float64            `json:"penalty"`
	Penalties       []model.Skill      `json:"penalties"`
	TotalRating     float64            `json:"total_rating"`
	Count           int                `json:"count"`
	Efficiency      float64            `json:"efficiency"`
}

// Aggregate builds the report. penalty is expected to be <= 0; penalties are
// the enabled records it was summed from.
func Aggregate(sel selection.Selection, penalty float64, penalties ...model.Skill) Report {
	chosen := sel.Chosen
	if chosen == nil {
		chosen = []selection.Chosen{}
	}
	if penalties == nil {
		penalties = []model.Skill{}
	}
	r := Report{
		RunID:           uuid.NewString(),
		Budget:          sel.Budget,
		Chosen:          chosen,
		UsedCost:        sel.Cost(),
		SelectionRating: sel.Rating(),
		Penalty:         penalty,
		Penalties:       penalties,
		Count:           len(chosen),
	}
	r.TotalRating = r.SelectionRating + penalty
	if r.UsedCost > 0 {
		r.Efficiency = r.TotalRating / float64(r.UsedCost)
	}
	return r
}
