package api

import (
	"net/http"

	"github.com/okian/skillbudget/internal/ingest"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	outcomes      OutcomeProvider
}

// NewStatsHandler creates a new stats handler. outcomes may be nil.
func NewStatsHandler(statsProvider StatsProvider, outcomes OutcomeProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, outcomes: outcomes}
}

// HandleStats handles GET /stats. The provider's map is extended with an
// "ingest" entry counting categories per ingestion status.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{}
	for k, v := range h.statsProvider.GetStats() {
		stats[k] = v
	}
	if h.outcomes != nil {
		byStatus := map[string]int{
			ingest.StatusOK:      0,
			ingest.StatusWarning: 0,
			ingest.StatusError:   0,
		}
		for _, o := range h.outcomes.IngestOutcomes(r.Context()) {
			byStatus[o.Status]++
		}
		stats["ingest"] = byStatus
	}
	writeJSON(w, http.StatusOK, stats)
}
