// Package scoring maps a skill and the current aptitude grades to a rating.
package scoring

import (
	"math"

	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
)

// Rating returns the benefit score of s under the assignment a.
//
// When s has an aptitude and a grades it, the tier value is used if present.
// Otherwise the base rating applies, or 0 if that is not finite. The result
// always reflects the assignment passed in; nothing is cached.
func Rating(s *model.Skill, a grade.Assignment) float64 {
	if tier, ok := a.Lookup(s.Aptitude); ok {
		if v, ok := s.Grades.Lookup(tier); ok {
			return v
		}
	}
	if math.IsNaN(s.RatingBase) || math.IsInf(s.RatingBase, 0) {
		return 0
	}
	return s.RatingBase
}

// Display returns the rating with the sign it contributes to the total:
// penalty skills are shown negated.
func Display(s *model.Skill, a grade.Assignment) float64 {
	r := Rating(s, a)
	if s.Type.IsPenalty() {
		return -r
	}
	return r
}

// TierUsed reports the tier assigned to the aptitude of s. It is reported
// even when s has no value at that tier and Rating fell back to the base.
func TierUsed(s *model.Skill, a grade.Assignment) (grade.Tier, bool) {
	return a.Lookup(s.Aptitude)
}
