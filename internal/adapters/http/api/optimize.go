// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/types"
)

// OptimizeDependencies defines the selection entry point.
type OptimizeDependencies interface {
	Optimize(ctx context.Context, budget int) (report.Report, error)
}

// OptimizeHandler handles optimize requests.
type OptimizeHandler struct {
	deps OptimizeDependencies
}

// NewOptimizeHandler creates a new optimize handler.
func NewOptimizeHandler(deps OptimizeDependencies) *OptimizeHandler {
	return &OptimizeHandler{deps: deps}
}

// HandleOptimize handles POST /optimize requests. Validation failures come
// back as 400 with invalid_budget, no_candidates or too_large.
func (h *OptimizeHandler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "api.optimize"
	var req types.OptimizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Budget == nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing budget")))
		return
	}
	rep, err := h.deps.Optimize(r.Context(), *req.Budget)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
