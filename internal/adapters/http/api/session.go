// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/skillbudget/internal/ingest"
)

// SessionDependencies defines the session-wide operations.
type SessionDependencies interface {
	Reset(ctx context.Context) error
	ResetSkills(ctx context.Context) error
	IngestOutcomes(ctx context.Context) []ingest.Outcome
}

// SessionHandler handles reset and ingestion status requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

type resetResponse struct {
	Status string `json:"status"`
	Scope  string `json:"scope"`
}

// HandleReset handles POST /reset?scope=all|skills requests.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	scope := r.URL.Query().Get("scope")
	var err error
	switch scope {
	case "", "all":
		scope = "all"
		err = h.deps.Reset(r.Context())
	case "skills":
		err = h.deps.ResetSkills(r.Context())
	default:
		writeDomainError(w, WrapKind(op, ErrBadRequest, fmt.Errorf("unknown scope %q", scope)))
		return
	}
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resetResponse{Status: "reset", Scope: scope})
}

// HandleIngest handles GET /ingest requests.
func (h *SessionHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.IngestOutcomes(r.Context()))
}
