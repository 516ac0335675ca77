// Package types contains common types used across the application
package types

import (
	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/scoring"
)

// SkillView is a catalog record with its rating under the current grades.
type SkillView struct {
	Index      int             `json:"index"`
	Type       model.SkillType `json:"type"`
	Name       string          `json:"name"`
	Variant    model.Variant   `json:"variant"`
	Aptitude   grade.Aptitude  `json:"aptitude,omitempty"`
	Tier       grade.Tier      `json:"tier,omitempty"`
	RatingBase float64         `json:"rating_base"`
	Rating     float64         `json:"rating"`
	SPCost     int             `json:"sp_cost"`
	GroupID    int64           `json:"group_id"`
	Enabled    bool            `json:"enabled,omitempty"`
}

// NewSkillView renders s under a. Penalty records show a negative rating.
func NewSkillView(s *model.Skill, a grade.Assignment) SkillView {
	v := SkillView{
		Index:      s.Index,
		Type:       s.Type,
		Name:       s.Name,
		Variant:    s.Variant,
		Aptitude:   s.Aptitude,
		RatingBase: s.RatingBase,
		Rating:     scoring.Display(s, a),
		SPCost:     s.SPCost,
		GroupID:    s.GroupID,
		Enabled:    s.Enabled,
	}
	if t, ok := scoring.TierUsed(s, a); ok {
		v.Tier = t
	}
	return v
}

// AptitudeGrade is one row of the grade assignment.
type AptitudeGrade struct {
	Aptitude grade.Aptitude `json:"aptitude"`
	Grade    grade.Tier     `json:"grade"`
}

// Assignment lists a in the fixed aptitude order.
func Assignment(a grade.Assignment) []AptitudeGrade {
	out := make([]AptitudeGrade, 0, len(a))
	for _, apt := range grade.Aptitudes() {
		if t, ok := a.Lookup(apt); ok {
			out = append(out, AptitudeGrade{Aptitude: apt, Grade: t})
		}
	}
	return out
}

// CostRequest sets the SP cost of a record.
type CostRequest struct {
	SPCost *int `json:"sp_cost"`
}

// CostByNameRequest sets the SP cost of a record found by name.
type CostByNameRequest struct {
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
	SPCost  *int   `json:"sp_cost"`
}

// EnabledRequest toggles a penalty record.
type EnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// GradeRequest changes the tier of one aptitude.
type GradeRequest struct {
	Aptitude string `json:"aptitude"`
	Grade    string `json:"grade"`
}

// OptimizeRequest runs the selection for a budget.
type OptimizeRequest struct {
	Budget *int `json:"budget"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}
