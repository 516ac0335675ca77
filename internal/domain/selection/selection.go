// Package selection picks which skills to buy under an SP budget.
//
// It solves a multiple-choice knapsack: every conceptual skill (group) may
// contribute at most one of its variants, total cost must stay within the
// budget, and the summed rating is maximized exactly.
package selection

import (
	"fmt"

	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/scoring"
)

// DefaultMaxCells bounds groups x budget x 2 before the DP table is allocated.
const DefaultMaxCells = 2_000_000

const none = -1

// Chosen is one purchased record with the cost and rating used by the solver.
type Chosen struct {
	Skill  model.Skill `json:"skill"`
	Cost   int         `json:"cost"`
	Rating float64     `json:"rating"`
	// Tier is the grade consulted for an aptitude skill, empty otherwise.
	Tier grade.Tier `json:"tier,omitempty"`
}

// Selection is the optimal purchase set in catalog group order.
type Selection struct {
	Budget int      `json:"budget"`
	Groups int      `json:"groups"`
	Chosen []Chosen `json:"chosen"`
}

// Rating sums the ratings of the chosen records.
func (s Selection) Rating() float64 {
	total := 0.0
	for _, c := range s.Chosen {
		total += c.Rating
	}
	return total
}

// Cost sums the costs of the chosen records.
func (s Selection) Cost() int {
	total := 0
	for _, c := range s.Chosen {
		total += c.Cost
	}
	return total
}

// Option configures Select.
type Option func(*options)

type options struct {
	maxCells int
}

// WithMaxCells overrides the resource guard ceiling.
func WithMaxCells(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCells = n
		}
	}
}

type candidate struct {
	skill  *model.Skill
	cost   int
	rating float64
}

// candidates groups the purchasable records by group ID, keeping groups in
// order of first appearance and members in catalog order.
func candidates(skills []model.Skill, a grade.Assignment) [][]candidate {
	index := make(map[int64]int)
	var groups [][]candidate
	for i := range skills {
		s := &skills[i]
		if !s.Purchasable() {
			continue
		}
		c := candidate{skill: s, cost: s.SPCost, rating: scoring.Rating(s, a)}
		g, ok := index[s.GroupID]
		if !ok {
			g = len(groups)
			index[s.GroupID] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], c)
	}
	return groups
}

// Select returns the rating-maximizing purchase set for budget.
//
// Errors, checked in order: ErrInvalidBudget, ErrNoCandidates, ErrTooLarge.
// Each one means no selection was attempted.
func Select(skills []model.Skill, a grade.Assignment, budget int, opts ...Option) (Selection, error) {
	o := options{maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(&o)
	}

	if budget <= 0 {
		return Selection{}, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}

	groups := candidates(skills, a)
	g := len(groups)
	if g == 0 {
		return Selection{}, ErrNoCandidates
	}

	if int64(g)*int64(budget)*2 > int64(o.maxCells) {
		return Selection{}, fmt.Errorf("%w: %d groups x %d SP exceeds %d cells", ErrTooLarge, g, budget, o.maxCells)
	}

	// best rolls over groups; choice keeps every row for reconstruction.
	prev := make([]float64, budget+1)
	cur := make([]float64, budget+1)
	choice := make([][]int16, g+1)

	for gi := 1; gi <= g; gi++ {
		group := groups[gi-1]
		row := make([]int16, budget+1)
		for c := 0; c <= budget; c++ {
			best := prev[c]
			picked := none
			for k, cand := range group {
				if cand.cost > c {
					continue
				}
				if v := prev[c-cand.cost] + cand.rating; v > best {
					best = v
					picked = k
				}
			}
			cur[c] = best
			row[c] = int16(picked)
		}
		choice[gi] = row
		prev, cur = cur, prev
	}

	remaining := budget
	chosen := make([]Chosen, 0, g)
	for gi := g; gi >= 1; gi-- {
		k := int(choice[gi][remaining])
		if k == none {
			continue
		}
		cand := groups[gi-1][k]
		tier, _ := scoring.TierUsed(cand.skill, a)
		chosen = append(chosen, Chosen{
			Skill:  *cand.skill,
			Cost:   cand.cost,
			Rating: cand.rating,
			Tier:   tier,
		})
		remaining -= cand.cost
	}
	for i, j := 0, len(chosen)-1; i < j; i, j = i+1, j-1 {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	}

	return Selection{Budget: budget, Groups: g, Chosen: chosen}, nil
}
