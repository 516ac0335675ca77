// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/skillbudget/internal/adapters/repository"
	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/penalty"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/selection"
	"github.com/okian/skillbudget/internal/domain/types"
	"github.com/okian/skillbudget/internal/ingest"
	"github.com/okian/skillbudget/pkg/logger"
	"github.com/okian/skillbudget/pkg/metrics"
)

// Service owns the session state: the catalog, the grade assignment and the
// ingestion outcomes.
type Service struct {
	mu sync.RWMutex
	// optimizeMu keeps a single optimize pass in flight.
	optimizeMu sync.Mutex

	// Core components
	catalog repository.Store
	source  ingest.Source

	// Configuration
	skillTypes       []model.SkillType
	fetchConcurrency int
	fetchTimeout     time.Duration
	maxCells         int
	suggestionLimit  int

	// State
	grades   grade.Assignment
	outcomes []ingest.Outcome
	started  bool
	lastRun  string

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where skill documents are read from.
func WithSource(src ingest.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithCatalog sets a pre-built catalog. Start skips creating one.
func WithCatalog(store repository.Store) Option {
	return func(s *Service) {
		s.catalog = store
	}
}

// WithSkillTypes limits which categories are loaded.
func WithSkillTypes(typesToLoad ...model.SkillType) Option {
	return func(s *Service) {
		if len(typesToLoad) > 0 {
			s.skillTypes = typesToLoad
		}
	}
}

// WithFetchConcurrency bounds concurrent document fetches.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// WithFetchTimeout bounds each document fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithMaxCells bounds the optimizer table size.
func WithMaxCells(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCells = n
		}
	}
}

// WithSuggestionLimit bounds the names offered for an unknown skill.
func WithSuggestionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestionLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		skillTypes:       model.SkillTypes(),
		fetchConcurrency: len(model.SkillTypes()),
		fetchTimeout:     10 * time.Second,
		maxCells:         selection.DefaultMaxCells,
		suggestionLimit:  5,
		grades:           grade.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the catalog from the configured source. Per-type ingestion
// failures are recorded, not returned.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.catalog == nil {
		s.catalog = repository.NewCatalogStore(ctx, repository.WithSuggestionLimit(s.suggestionLimit))
	}

	s.logger.Info(ctx, "starting skill planner service...")
	if s.source != nil {
		loader := ingest.NewLoader(s.source,
			ingest.WithConcurrency(s.fetchConcurrency),
			ingest.WithFetchTimeout(s.fetchTimeout),
			ingest.WithLogger(s.logger.Named("ingest")),
		)
		s.outcomes = loader.Load(ctx, s.catalog, s.skillTypes)
	} else {
		s.logger.Warn(ctx, "starting with an empty catalog", logger.Error(ErrNoSource))
	}

	s.started = true
	s.logger.Info(ctx, "skill planner service started",
		logger.Int("skills", s.catalog.Count(ctx)),
		logger.Int("types", len(s.skillTypes)),
		logger.Int("maxCells", s.maxCells),
	)
	return nil
}

// Stop marks the service stopped. The catalog stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "skill planner service stopped")
}

func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, ErrNotStarted
	}
	return s.catalog, nil
}

// assignment returns a private copy of the current grades.
func (s *Service) assignment() grade.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grades.Clone()
}

// Skills lists catalog records with their current ratings. An empty typ
// lists every category.
func (s *Service) Skills(ctx context.Context, typ model.SkillType) ([]types.SkillView, error) {
	cat, err := s.store()
	if err != nil {
		return nil, err
	}
	a := s.assignment()
	out := []types.SkillView{}
	for _, sk := range cat.Snapshot(ctx) {
		if typ != "" && sk.Type != typ {
			continue
		}
		out = append(out, types.NewSkillView(&sk, a))
	}
	return out, nil
}

// SetCost records the SP cost of the record at index.
func (s *Service) SetCost(ctx context.Context, index, cost int) (types.SkillView, error) {
	cat, err := s.store()
	if err != nil {
		return types.SkillView{}, err
	}
	sk, err := cat.SetCost(ctx, index, cost)
	if err != nil {
		return types.SkillView{}, err
	}
	return types.NewSkillView(&sk, s.assignment()), nil
}

// SetCostByName resolves a record by name and records its SP cost. variant
// may be empty when the name is unique.
func (s *Service) SetCostByName(ctx context.Context, name, variant string, cost int) (types.SkillView, error) {
	cat, err := s.store()
	if err != nil {
		return types.SkillView{}, err
	}
	var v model.Variant
	if strings.TrimSpace(variant) != "" {
		if v, err = model.ParseVariant(variant); err != nil {
			return types.SkillView{}, err
		}
	}
	sk, err := cat.FindByName(ctx, name, v)
	if err != nil {
		return types.SkillView{}, err
	}
	return s.SetCost(ctx, sk.Index, cost)
}

// SetEnabled toggles the penalty record at index.
func (s *Service) SetEnabled(ctx context.Context, index int, enabled bool) (types.SkillView, error) {
	cat, err := s.store()
	if err != nil {
		return types.SkillView{}, err
	}
	sk, err := cat.SetEnabled(ctx, index, enabled)
	if err != nil {
		return types.SkillView{}, err
	}
	return types.NewSkillView(&sk, s.assignment()), nil
}

// SetEnabledByName toggles a penalty record found by name.
func (s *Service) SetEnabledByName(ctx context.Context, name string, enabled bool) (types.SkillView, error) {
	cat, err := s.store()
	if err != nil {
		return types.SkillView{}, err
	}
	sk, err := cat.FindByName(ctx, name, "")
	if err != nil {
		return types.SkillView{}, err
	}
	return s.SetEnabled(ctx, sk.Index, enabled)
}

// Grades returns the current grade assignment.
func (s *Service) Grades(_ context.Context) []types.AptitudeGrade {
	return types.Assignment(s.assignment())
}

// SetGrade changes the tier of one aptitude. Ratings shown afterwards
// reflect it; nothing is cached.
func (s *Service) SetGrade(ctx context.Context, aptitude, tier string) ([]types.AptitudeGrade, error) {
	s.mu.Lock()
	apt, t, err := s.grades.Set(aptitude, tier)
	out := types.Assignment(s.grades)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	metrics.RecordSkillEdit("grade")
	s.log().Debug(ctx, "grade changed", logger.String("aptitude", string(apt)), logger.String("grade", string(t)))
	return out, nil
}

// Optimize picks the best purchase set for budget and folds in the penalty
// of every enabled penalty record.
func (s *Service) Optimize(ctx context.Context, budget int) (report.Report, error) {
	cat, err := s.store()
	if err != nil {
		return report.Report{}, err
	}
	s.optimizeMu.Lock()
	defer s.optimizeMu.Unlock()

	skills := cat.Snapshot(ctx)
	a := s.assignment()

	start := time.Now()
	sel, err := selection.Select(skills, a, budget, selection.WithMaxCells(s.maxCells))
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		outcome := optimizeOutcome(err)
		metrics.RecordOptimizeRun(outcome)
		s.log().Warn(ctx, "optimize rejected",
			logger.Int("budget", budget),
			logger.String("reason", outcome),
			logger.Error(err),
		)
		return report.Report{}, fmt.Errorf("optimize: %w", err)
	}

	rep := report.Aggregate(sel, penalty.Penalty(skills, a), penalty.Enabled(skills)...)

	metrics.RecordOptimizeRun("ok")
	metrics.RecordOptimizeLatency(elapsed)
	metrics.RecordOptimizeCells(sel.Groups * (budget + 1))
	metrics.UpdateOptimizeResult(rep.TotalRating, rep.Penalty)

	s.mu.Lock()
	s.lastRun = rep.RunID
	s.mu.Unlock()

	s.log().Info(ctx, "optimize complete",
		logger.String("runID", rep.RunID),
		logger.Int("budget", budget),
		logger.Int("groups", sel.Groups),
		logger.Int("chosen", rep.Count),
		logger.Int("usedCost", rep.UsedCost),
		logger.Float64("totalRating", rep.TotalRating),
		logger.Float64("latencyMs", elapsed),
	)
	return rep, nil
}

func optimizeOutcome(err error) string {
	switch {
	case errors.Is(err, selection.ErrInvalidBudget):
		return "invalid_budget"
	case errors.Is(err, selection.ErrNoCandidates):
		return "no_candidates"
	case errors.Is(err, selection.ErrTooLarge):
		return "too_large"
	default:
		return "error"
	}
}

// ResetSkills clears every SP cost and penalty toggle, keeping the grades.
func (s *Service) ResetSkills(ctx context.Context) error {
	cat, err := s.store()
	if err != nil {
		return err
	}
	cat.ResetSkills(ctx)
	s.log().Info(ctx, "skills reset")
	return nil
}

// Reset restores the session to its post-ingestion state: costs and toggles
// cleared, every aptitude back at the highest tier. It is idempotent.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.ResetSkills(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.grades = grade.Default()
	s.mu.Unlock()
	s.log().Info(ctx, "session reset")
	return nil
}

// IngestOutcomes returns how each category was loaded.
func (s *Service) IngestOutcomes(_ context.Context) []ingest.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ingest.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"fetchConcurrency": s.fetchConcurrency,
		"maxCells":         s.maxCells,
	}
	if s.catalog != nil {
		stats["totalSkills"] = s.catalog.Count(ctx)
		if cs, ok := s.catalog.(*repository.CatalogStore); ok {
			byType := map[string]int{}
			for t, n := range cs.CountByType(ctx) {
				byType[string(t)] = n
			}
			stats["skillsByType"] = byType
			stats["groups"] = cs.Groups()
		}
	}
	if s.lastRun != "" {
		stats["lastRunID"] = s.lastRun
	}
	return stats
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
