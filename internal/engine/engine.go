// Package engine implements the AgriScan telemetry aggregation engine:
// zone extraction, phase timeline derivation, status bucketing, cross-zone
// averaging and summary statistics over a fully materialized record
// collection. The engine is synchronous and side-effect free: it only reads
// the input collection and builds fresh output structures, so running it
// twice on the same input yields identical results.
package engine

import (
	"github.com/agriscan/agriview/internal/types"
	"go.uber.org/zap"
)

// Engine runs the full aggregation pipeline over a record collection.
type Engine struct {
	soil   SoilParams
	rules  []CategoryRule
	logger *zap.SugaredLogger
}

// New creates an engine with the given soil constants and phase category
// rules. Nil rules fall back to the dashboard defaults.
func New(soil SoilParams, rules []CategoryRule, logger *zap.SugaredLogger) *Engine {
	if rules == nil {
		rules = DefaultCategoryRules()
	}
	return &Engine{soil: soil, rules: rules, logger: logger}
}

// Run executes every pipeline stage and bundles the outputs. Degraded
// input never aborts: missing zones, phases, or fields produce empty
// results and the caller decides what to skip.
func (e *Engine) Run(records []types.TelemetryRecord) *Results {
	zones := ExtractZones(records, e.soil)
	if e.logger != nil {
		e.logger.Infof("extracted %d zones from %d records", zones.Len(), len(records))
	}

	results := &Results{
		Zones:         zones,
		Segments:      BuildTimeline(records, zones, e.rules),
		PhaseAverages: AverageVWCByPhase(records),
		Buckets:       BuildTickBuckets(records),
		Aggregates:    AlignAverage(zones),
		Summary:       BuildSummary(records, zones),
	}

	if e.logger != nil {
		if len(results.Segments) == 0 {
			e.logger.Warnf("no phase data in input, timeline will be empty")
		}
		e.logger.Infof("run complete: %d phase segments, %d ticks, %.1f min duration",
			len(results.Segments), len(results.Buckets), results.Summary.DurationMin)
	}

	return results
}
