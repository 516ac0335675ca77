package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agnivade/levenshtein"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/pkg/metrics"
)

const defaultSuggestionLimit = 5

// CatalogStore is the in-memory Store. Appends and edits take the write
// lock; readers get copies so a running optimize pass never observes a
// half-applied edit.
type CatalogStore struct {
	mu     sync.RWMutex
	skills []model.Skill
	byType map[model.SkillType]int

	groups atomic.Int64

	suggestionLimit int
}

var _ Store = (*CatalogStore)(nil)

// NewCatalogStore creates an empty catalog.
func NewCatalogStore(_ context.Context, opts ...Option) *CatalogStore {
	s := &CatalogStore{
		byType:          make(map[model.SkillType]int),
		suggestionLimit: defaultSuggestionLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextGroupID returns 0, 1, 2, ... across all callers.
func (s *CatalogStore) NextGroupID() int64 {
	id := s.groups.Add(1) - 1
	metrics.UpdateCatalogGroups(id + 1)
	return id
}

// Append stores records in order and returns their assigned indexes.
func (s *CatalogStore) Append(_ context.Context, skills ...model.Skill) []int {
	if len(skills) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make([]int, len(skills))
	touched := make(map[model.SkillType]struct{})
	for i, sk := range skills {
		sk.Index = len(s.skills)
		idx[i] = sk.Index
		s.skills = append(s.skills, sk)
		s.byType[sk.Type]++
		touched[sk.Type] = struct{}{}
	}
	for t := range touched {
		metrics.UpdateCatalogSkills(string(t), s.byType[t])
	}
	return idx
}

// Snapshot returns a copy of the catalog. Grades maps are shared; they are
// written once at ingestion and never modified.
func (s *CatalogStore) Snapshot(_ context.Context) []model.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Skill, len(s.skills))
	copy(out, s.skills)
	return out
}

// Get returns the record at index.
func (s *CatalogStore) Get(_ context.Context, index int) (model.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.skills) {
		return model.Skill{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return s.skills[index], nil
}

// Count returns the number of records.
func (s *CatalogStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.skills)
}

// CountByType returns the number of records per skill type.
func (s *CatalogStore) CountByType(_ context.Context) map[model.SkillType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.SkillType]int, len(s.byType))
	for k, v := range s.byType {
		out[k] = v
	}
	return out
}

// Groups returns the number of group ids handed out.
func (s *CatalogStore) Groups() int64 { return s.groups.Load() }

// FindByName resolves name case-insensitively. An empty variant matches
// either role; more than one match is reported as ErrAmbiguous.
func (s *CatalogStore) FindByName(ctx context.Context, name string, variant model.Variant) (model.Skill, error) {
	want := strings.TrimSpace(name)
	s.mu.RLock()
	var matches []model.Skill
	for _, sk := range s.skills {
		if !strings.EqualFold(sk.Name, want) {
			continue
		}
		if variant != "" && sk.Variant != variant {
			continue
		}
		matches = append(matches, sk)
	}
	s.mu.RUnlock()

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Skill{}, &NotFoundError{Name: name, Suggestions: s.Suggest(ctx, name)}
	default:
		types := make([]string, len(matches))
		for i, m := range matches {
			types[i] = fmt.Sprintf("%s/%s", m.Type, m.Variant)
		}
		return model.Skill{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, name, strings.Join(types, ", "))
	}
}

// Suggest returns up to the configured number of names within a small edit
// distance of name, closest first.
func (s *CatalogStore) Suggest(_ context.Context, name string) []string {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}

	type hit struct {
		name string
		dist int
	}
	seen := make(map[string]bool)
	var hits []hit

	s.mu.RLock()
	for _, sk := range s.skills {
		cand := strings.ToLower(sk.Name)
		if seen[cand] {
			continue
		}
		dist := levenshtein.ComputeDistance(want, cand)
		if dist > distanceLimit(len(cand)) && !strings.Contains(cand, want) {
			continue
		}
		seen[cand] = true
		hits = append(hits, hit{name: sk.Name, dist: dist})
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})
	if len(hits) > s.suggestionLimit {
		hits = hits[:s.suggestionLimit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// SetCost records the SP cost for a purchasable record. A cost of 0 clears
// it; negative costs are rejected.
func (s *CatalogStore) SetCost(_ context.Context, index, cost int) (model.Skill, error) {
	if cost < 0 {
		return model.Skill{}, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.skills) {
		return model.Skill{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	sk := &s.skills[index]
	if sk.Type.IsPenalty() {
		return model.Skill{}, fmt.Errorf("%w: %s", ErrNotPurchasable, sk.Name)
	}
	sk.SPCost = cost
	metrics.RecordSkillEdit("cost")
	return *sk, nil
}

// SetEnabled toggles a penalty record.
func (s *CatalogStore) SetEnabled(_ context.Context, index int, enabled bool) (model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.skills) {
		return model.Skill{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	sk := &s.skills[index]
	if !sk.Type.IsPenalty() {
		return model.Skill{}, fmt.Errorf("%w: %s is %s", ErrNotPenalty, sk.Name, sk.Type)
	}
	sk.Enabled = enabled
	metrics.RecordSkillEdit("enabled")
	return *sk, nil
}

// ResetSkills clears every SP cost and penalty toggle. Calling it again is a
// no-op.
func (s *CatalogStore) ResetSkills(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skills {
		s.skills[i].SPCost = 0
		s.skills[i].Enabled = false
	}
	metrics.RecordSkillEdit("reset")
}

// NotFoundError is returned by FindByName with close matches attached.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("skill not found: %q", e.Name)
	}
	return fmt.Sprintf("skill not found: %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }
