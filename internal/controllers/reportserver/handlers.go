package reportserver

import (
	"net/http"

	"github.com/agriscan/agriview/internal/engine"
	"github.com/agriscan/agriview/pkg/responseformat"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers answers API requests from the in-memory results.
type Handlers struct {
	results   *engine.Results
	runID     string
	formatter *responseformat.Formatter
	logger    *zap.SugaredLogger
}

// NewHandlers creates the handler set for one computed result.
func NewHandlers(results *engine.Results, runID string, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		results:   results,
		runID:     runID,
		formatter: responseformat.NewFormatter(),
		logger:    logger,
	}
}

// GetSummary returns the overall run summary.
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, map[string]any{
		"run_id":  h.runID,
		"summary": h.results.Summary,
	})
}

// GetZones returns the zone id list in first-seen order.
func (h *Handlers) GetZones(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, map[string]any{"zones": h.results.Zones.Order})
}

// GetZone returns the full metric series for one zone.
func (h *Handlers) GetZone(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	z := h.results.Zones.Get(id)
	if z == nil {
		http.Error(w, "unknown zone", http.StatusNotFound)
		return
	}
	h.write(w, r, z)
}

// GetPhases returns the phase timeline and per-phase VWC averages.
func (h *Handlers) GetPhases(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, map[string]any{
		"segments": h.results.Segments,
		"averages": h.results.PhaseAverages,
	})
}

// GetStatus returns the per-tick health buckets.
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, map[string]any{"buckets": h.results.Buckets})
}

// GetAggregates returns the cross-zone averaged series.
func (h *Handlers) GetAggregates(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, map[string]any{"aggregates": h.results.Aggregates})
}

func (h *Handlers) write(w http.ResponseWriter, r *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, r, data); err != nil {
		h.logger.Errorf("failed to write response for %s: %v", r.URL.Path, err)
	}
}
