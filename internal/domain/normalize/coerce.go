package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/tidwall/gjson"
)

// profile is the rating data shared by every record of one variant role in a
// block.
type profile struct {
	base   float64
	grades model.Grades
}

// numberOrNull coerces a tier entry. Missing, null, "" and non-numeric
// values are null; booleans are 1 or 0 and whitespace-only strings are 0.
func numberOrNull(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.True:
		return 1, true
	case gjson.False:
		return 0, true
	case gjson.String:
		if r.Str == "" {
			return 0, false
		}
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return 0, true
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// scalar coerces a base or upgraded value; anything unusable becomes 0.
func scalar(r gjson.Result) float64 {
	v, _ := numberOrNull(r)
	return v
}

func gradesOf(ratings gjson.Result) model.Grades {
	g := make(model.Grades, 4)
	if !ratings.IsObject() {
		return g
	}
	for _, t := range grade.Tiers() {
		if v, ok := numberOrNull(ratings.Get(string(t))); ok {
			g[t] = v
		}
	}
	return g
}

func profileOf(value, ratings gjson.Result) profile {
	return profile{base: scalar(value), grades: gradesOf(ratings)}
}

// nameOf returns a non-empty string name.
func nameOf(r gjson.Result) (string, bool) {
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}

// aptitudeOf returns the aptitude label, "" meaning none.
func aptitudeOf(r gjson.Result) grade.Aptitude {
	if r.Type != gjson.String {
		return grade.None
	}
	return grade.Aptitude(r.Str)
}

func record(typ model.SkillType, name string, v model.Variant, apt grade.Aptitude, p profile) model.Skill {
	return model.Skill{
		Type:       typ,
		Name:       name,
		Variant:    v,
		RatingBase: p.base,
		Aptitude:   apt,
		Grades:     p.grades,
	}
}
