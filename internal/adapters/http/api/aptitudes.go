// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/skillbudget/internal/domain/types"
)

// GradeDependencies defines the grade assignment operations.
type GradeDependencies interface {
	Grades(ctx context.Context) []types.AptitudeGrade
	SetGrade(ctx context.Context, aptitude, tier string) ([]types.AptitudeGrade, error)
}

// GradesHandler handles aptitude grade requests.
type GradesHandler struct {
	deps GradeDependencies
}

// NewGradesHandler creates a new grades handler.
func NewGradesHandler(deps GradeDependencies) *GradesHandler {
	return &GradesHandler{deps: deps}
}

// HandleGet handles GET /aptitudes requests.
func (h *GradesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Grades(r.Context()))
}

// HandleSet handles PUT /aptitudes requests.
func (h *GradesHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_grade"
	var req types.GradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.SetGrade(r.Context(), req.Aptitude, req.Grade)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
