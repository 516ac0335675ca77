package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/skillbudget/internal/ingest"
	"github.com/okian/skillbudget/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeProvider reports how each skill category was ingested.
type OutcomeProvider interface {
	IngestOutcomes(ctx context.Context) []ingest.Outcome
}

// Health is the JSON body of GET /healthz.
type Health struct {
	Status     string   `json:"status"`
	Categories int      `json:"categories"`
	Skills     int      `json:"skills"`
	Failed     []string `json:"failed,omitempty"`
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	outcomes OutcomeProvider
	metrics  http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(outcomes OutcomeProvider) *HealthHandler {
	return &HealthHandler{
		outcomes: outcomes,
		metrics:  promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz. Scrapers asking for text/plain or
// OpenMetrics get the Prometheus exposition; everyone else gets JSON.
// A category whose document failed to load marks the service degraded
// but never unhealthy: the rest of the catalog stays usable.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/openmetrics-text") || strings.Contains(accept, "text/plain") {
		h.metrics.ServeHTTP(w, r)
		return
	}

	resp := Health{Status: "ok"}
	for _, o := range h.outcomes.IngestOutcomes(r.Context()) {
		resp.Categories++
		resp.Skills += o.Skills
		if o.Status == ingest.StatusError {
			resp.Failed = append(resp.Failed, string(o.Type))
		}
	}
	if len(resp.Failed) > 0 {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics handles GET /metrics.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
