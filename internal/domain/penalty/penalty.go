// Package penalty scores the toggled members of the penalty category.
package penalty

import (
	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/scoring"
)

// Enabled returns the penalty records currently toggled on, in catalog order.
func Enabled(skills []model.Skill) []model.Skill {
	var out []model.Skill
	for i := range skills {
		if skills[i].Type.IsPenalty() && skills[i].Enabled {
			out = append(out, skills[i])
		}
	}
	return out
}

// Penalty returns the negated sum of the ratings of every enabled penalty
// skill. It ignores budget and selection and is recomputed on every call.
func Penalty(skills []model.Skill, a grade.Assignment) float64 {
	total := 0.0
	for i := range skills {
		s := &skills[i]
		if !s.Type.IsPenalty() || !s.Enabled {
			continue
		}
		total -= scoring.Rating(s, a)
	}
	return total
}
