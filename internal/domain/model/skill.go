// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/skillbudget/internal/domain/grade"
)

// SkillType is a catalog category.
type SkillType string

// Catalog categories. Purple is the penalty category: its members are never
// bought, only toggled, and subtract from the final rating.
const (
	Yellow  SkillType = "Yellow"
	Blue    SkillType = "Blue"
	Red     SkillType = "Red"
	Green   SkillType = "Green"
	Inherit SkillType = "Inherit"
	Purple  SkillType = "Purple"
)

var skillTypes = []SkillType{Yellow, Blue, Red, Green, Inherit, Purple}

// SkillTypes returns every category in display order.
func SkillTypes() []SkillType {
	out := make([]SkillType, len(skillTypes))
	copy(out, skillTypes)
	return out
}

// IsPenalty reports whether members of t contribute negatively.
func (t SkillType) IsPenalty() bool { return t == Purple }

// ParseSkillType parses a category name case-insensitively.
func ParseSkillType(s string) (SkillType, error) {
	for _, t := range skillTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSkillType, s)
}

// Variant is the semantic role of a record within its group.
type Variant string

// Variant roles.
const (
	Base Variant = "Base"
	Gold Variant = "Gold"
)

// ParseVariant maps source labels onto the two roles. "Normal" is the label
// older documents use for the base form; "Upgraded" for the gold form.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base", "normal":
		return Base, nil
	case "gold", "upgraded":
		return Gold, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Grades holds the rating at each tier. A missing tier is null and falls back
// to the record's base rating.
type Grades map[grade.Tier]float64

// Lookup returns the finite rating stored for t.
func (g Grades) Lookup(t grade.Tier) (float64, bool) {
	v, ok := g[t]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Skill is the canonical catalog record.
//
// SPCost and Enabled are the only fields mutated after ingestion: SPCost by
// cost edits (<= 0 means not a purchase candidate), Enabled by penalty
// toggles. Everything else is written once by the normalizer.
type Skill struct {
	Index      int            `json:"index"`
	Type       SkillType      `json:"type"`
	Name       string         `json:"name"`
	Variant    Variant        `json:"variant"`
	RatingBase float64        `json:"rating_base"`
	Aptitude   grade.Aptitude `json:"aptitude,omitempty"`
	Grades     Grades         `json:"grades,omitempty"`
	SPCost     int            `json:"sp_cost,omitempty"`
	GroupID    int64          `json:"group_id"`
	Enabled    bool           `json:"enabled,omitempty"`
}

// Purchasable reports whether the record is a candidate for the optimizer.
func (s *Skill) Purchasable() bool {
	return !s.Type.IsPenalty() && s.SPCost > 0
}
