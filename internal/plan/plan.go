// Package plan reads a purchase plan: the budget, aptitude grades, SP costs
// and penalty toggles a player wants evaluated, in one YAML file.
//
//	budget: 1200
//	aptitudes:
//	  Mile: B-C
//	costs:
//	  - name: Mile Corners
//	    sp_cost: 160
//	  - name: Mile Maven
//	    variant: Gold
//	    sp_cost: 320
//	penalties:
//	  - Gatekept
package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/okian/skillbudget/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan wraps every plan decoding failure.
var ErrInvalidPlan = errors.New("invalid plan")

// Cost assigns an SP cost to a record by name.
type Cost struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant,omitempty"`
	SPCost  int    `yaml:"sp_cost"`
}

// Plan is one what-if scenario.
type Plan struct {
	Budget    int               `yaml:"budget"`
	Aptitudes map[string]string `yaml:"aptitudes"`
	Costs     []Cost            `yaml:"costs"`
	Penalties []string          `yaml:"penalties"`
}

// Parse decodes a YAML plan. Unknown keys are rejected so typos surface.
func Parse(data []byte) (Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	for i, c := range p.Costs {
		if c.Name == "" {
			return Plan{}, fmt.Errorf("%w: costs[%d] has no name", ErrInvalidPlan, i)
		}
	}
	return p, nil
}

// Load reads and parses the plan at path.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return Parse(data)
}

// Applier is the part of the service a plan edits.
type Applier interface {
	SetGrade(ctx context.Context, aptitude, tier string) ([]types.AptitudeGrade, error)
	SetCostByName(ctx context.Context, name, variant string, cost int) (types.SkillView, error)
	SetEnabledByName(ctx context.Context, name string, enabled bool) (types.SkillView, error)
}

// Apply sets grades, then costs, then penalty toggles. Every entry is
// attempted; the failures are joined.
func (p Plan) Apply(ctx context.Context, svc Applier) error {
	var errs []error

	apts := make([]string, 0, len(p.Aptitudes))
	for apt := range p.Aptitudes {
		apts = append(apts, apt)
	}
	sort.Strings(apts)
	for _, apt := range apts {
		if _, err := svc.SetGrade(ctx, apt, p.Aptitudes[apt]); err != nil {
			errs = append(errs, fmt.Errorf("aptitude %s: %w", apt, err))
		}
	}
	for _, c := range p.Costs {
		if _, err := svc.SetCostByName(ctx, c.Name, c.Variant, c.SPCost); err != nil {
			errs = append(errs, fmt.Errorf("cost %s: %w", c.Name, err))
		}
	}
	for _, name := range p.Penalties {
		if _, err := svc.SetEnabledByName(ctx, name, true); err != nil {
			errs = append(errs, fmt.Errorf("penalty %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
