// Package grade defines the aptitude grade table: four ordered grade tiers and
// the ten aptitude categories a player assigns them to.
package grade

import (
	"fmt"
	"strings"
)

// Tier is an aptitude letter-grade bucket.
type Tier string

// Tiers from highest to lowest.
const (
	TierSA  Tier = "S-A"
	TierBC  Tier = "B-C"
	TierDEF Tier = "D-E-F"
	TierG   Tier = "G"
)

// Aptitude is a track surface, distance band or running style label.
// Values match the aptitude strings used by the skill documents.
type Aptitude string

// Aptitude categories. None marks a skill whose rating ignores aptitude.
const (
	None Aptitude = ""

	Turf Aptitude = "Turf"
	Dirt Aptitude = "Dirt"

	Sprint Aptitude = "Sprint"
	Mile   Aptitude = "Mile"
	Medium Aptitude = "Medium"
	Long   Aptitude = "Long"

	Front      Aptitude = "Front"
	PaceChaser Aptitude = "Pace Chaser"
	LateSurger Aptitude = "Late Surger"
	EndCloser  Aptitude = "End Closer"
)

var tiers = []Tier{TierSA, TierBC, TierDEF, TierG}

var aptitudes = []Aptitude{
	Turf, Dirt,
	Sprint, Mile, Medium, Long,
	Front, PaceChaser, LateSurger, EndCloser,
}

// Tiers returns the grade tiers ordered from highest to lowest.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Aptitudes returns the ten aptitude categories: surfaces, distances, styles.
func Aptitudes() []Aptitude {
	out := make([]Aptitude, len(aptitudes))
	copy(out, aptitudes)
	return out
}

// Rank returns the position of t in the tier order (0 is highest), or -1.
func (t Tier) Rank() int {
	for i, v := range tiers {
		if v == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the four tiers.
func (t Tier) Valid() bool { return t.Rank() >= 0 }

// Key returns the ID-safe form of the label, e.g. "Pace_Chaser".
func (a Aptitude) Key() string { return strings.ReplaceAll(string(a), " ", "_") }

// ParseTier parses a tier label case-insensitively.
func ParseTier(s string) (Tier, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range tiers {
		if string(t) == in {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// ParseAptitude accepts either the display label ("Pace Chaser") or the
// ID-safe key ("Pace_Chaser"), case-insensitively.
func ParseAptitude(s string) (Aptitude, error) {
	in := strings.TrimSpace(s)
	for _, a := range aptitudes {
		if strings.EqualFold(string(a), in) || strings.EqualFold(a.Key(), in) {
			return a, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownAptitude, s)
}
