// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/types"
)

// SkillDependencies defines the catalog operations behind /skills.
type SkillDependencies interface {
	Skills(ctx context.Context, typ model.SkillType) ([]types.SkillView, error)
	SetCost(ctx context.Context, index, cost int) (types.SkillView, error)
	SetCostByName(ctx context.Context, name, variant string, cost int) (types.SkillView, error)
	SetEnabled(ctx context.Context, index int, enabled bool) (types.SkillView, error)
}

// SkillsHandler handles catalog requests.
type SkillsHandler struct {
	deps SkillDependencies
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(deps SkillDependencies) *SkillsHandler {
	return &SkillsHandler{deps: deps}
}

// HandleList handles GET /skills?type=T requests.
func (h *SkillsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_skills"
	var typ model.SkillType
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		t, err := model.ParseSkillType(raw)
		if err != nil {
			writeDomainError(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		typ = t
	}
	skills, err := h.deps.Skills(r.Context(), typ)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// HandleSetCost handles PUT /skills/{index}/cost requests.
func (h *SkillsHandler) HandleSetCost(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_cost"
	index, err := pathIndex(r)
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadIndex, err))
		return
	}
	var req types.CostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.SPCost == nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing sp_cost")))
		return
	}
	view, err := h.deps.SetCost(r.Context(), index, *req.SPCost)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSetCostByName handles PUT /skills/cost requests.
func (h *SkillsHandler) HandleSetCostByName(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_cost_by_name"
	var req types.CostByNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	switch {
	case strings.TrimSpace(req.Name) == "":
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	case req.SPCost == nil:
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing sp_cost")))
		return
	}
	view, err := h.deps.SetCostByName(r.Context(), req.Name, req.Variant, *req.SPCost)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSetEnabled handles PUT /skills/{index}/enabled requests.
func (h *SkillsHandler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_enabled"
	index, err := pathIndex(r)
	if err != nil {
		writeDomainError(w, WrapKind(op, ErrBadIndex, err))
		return
	}
	var req types.EnabledRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Enabled == nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing enabled")))
		return
	}
	view, err := h.deps.SetEnabled(r.Context(), index, *req.Enabled)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func pathIndex(r *http.Request) (int, error) {
	n, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("index must not be negative")
	}
	return n, nil
}
