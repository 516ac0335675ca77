// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/skillbudget/internal/adapters/repository"
	service "github.com/okian/skillbudget/internal/app"
	"github.com/okian/skillbudget/internal/domain/grade"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/selection"
	"github.com/okian/skillbudget/internal/domain/types"
)

const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SkillDependencies
	GradeDependencies
	OutcomeProvider

	Optimize(ctx context.Context, budget int) (report.Report, error)
	Reset(ctx context.Context) error
	ResetSkills(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	skillsHandler   *SkillsHandler
	gradesHandler   *GradesHandler
	optimizeHandler *OptimizeHandler
	sessionHandler  *SessionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider, deps),
		skillsHandler:   NewSkillsHandler(deps),
		gradesHandler:   NewGradesHandler(deps),
		optimizeHandler: NewOptimizeHandler(deps),
		sessionHandler:  NewSessionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /skills", MetricsMiddleware(s.skillsHandler.HandleList, "skills"))
	mux.HandleFunc("PUT /skills/cost", MetricsMiddleware(s.skillsHandler.HandleSetCostByName, "skills_cost_by_name"))
	mux.HandleFunc("PUT /skills/{index}/cost", MetricsMiddleware(s.skillsHandler.HandleSetCost, "skills_cost"))
	mux.HandleFunc("PUT /skills/{index}/enabled", MetricsMiddleware(s.skillsHandler.HandleSetEnabled, "skills_enabled"))

	mux.HandleFunc("GET /aptitudes", MetricsMiddleware(s.gradesHandler.HandleGet, "aptitudes"))
	mux.HandleFunc("PUT /aptitudes", MetricsMiddleware(s.gradesHandler.HandleSet, "aptitudes"))

	mux.HandleFunc("POST /optimize", MetricsMiddleware(s.optimizeHandler.HandleOptimize, "optimize"))

	mux.HandleFunc("POST /reset", MetricsMiddleware(s.sessionHandler.HandleReset, "reset"))
	mux.HandleFunc("GET /ingest", MetricsMiddleware(s.sessionHandler.HandleIngest, "ingest"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	resp := types.ErrorResponse{Code: code, Message: msg}
	if err != nil {
		resp.Message = err.Error()
		var nf *repository.NotFoundError
		if errors.As(err, &nf) {
			resp.Suggestions = nf.Suggestions
		}
	}
	writeJSON(w, status, resp)
}

// writeDomainError translates errors from the service into a status and
// a stable code.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBadIndex):
		return http.StatusBadRequest, "bad_index"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAmbiguous):
		return http.StatusConflict, "ambiguous"
	case errors.Is(err, repository.ErrInvalidCost):
		return http.StatusBadRequest, "invalid_cost"
	case errors.Is(err, repository.ErrNotPurchasable):
		return http.StatusBadRequest, "not_purchasable"
	case errors.Is(err, repository.ErrNotPenalty):
		return http.StatusBadRequest, "not_penalty"
	case errors.Is(err, grade.ErrUnknownTier), errors.Is(err, grade.ErrUnknownAptitude):
		return http.StatusBadRequest, "invalid_grade"
	case errors.Is(err, model.ErrUnknownSkillType), errors.Is(err, model.ErrUnknownVariant):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, selection.ErrInvalidBudget):
		return http.StatusBadRequest, "invalid_budget"
	case errors.Is(err, selection.ErrNoCandidates):
		return http.StatusBadRequest, "no_candidates"
	case errors.Is(err, selection.ErrTooLarge):
		return http.StatusBadRequest, "too_large"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
