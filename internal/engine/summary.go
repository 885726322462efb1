package engine

import (
	"sort"

	"github.com/agriscan/agriview/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BuildSummary computes the run summary: totals, duration, distinct phase
// names, and per-zone statistics. Zones with an empty VWC sequence are
// skipped from the statistics section but still counted as active zones.
// Zone sections come back sorted by id, matching the report layout.
func BuildSummary(records []types.TelemetryRecord, zones *ZoneMap) *Summary {
	s := &Summary{
		TotalRecords: len(records),
		DurationMin:  zones.MaxElapsed(),
		ActiveZones:  zones.Len(),
		Phases:       distinctPhases(records),
	}

	ids := make([]string, len(zones.Order))
	copy(ids, zones.Order)
	sort.Strings(ids)

	for _, id := range ids {
		z := zones.Zones[id]
		if len(z.VWC) == 0 {
			continue
		}

		zs := ZoneSummary{
			ZoneID:     id,
			Samples:    z.Len(),
			VWC:        seriesStats(z.VWC),
			Psi:        seriesStats(z.Psi),
			AW:         seriesStats(z.AW),
			Depletion:  seriesStats(z.Depletion),
			Raw:        seriesStats(z.Raw),
			Confidence: seriesStats(z.Confidence),
			StatusDist: distribution(z.Status),
			RegimeDist: distribution(z.Regime),
		}

		// Drying-rate stats cover non-zero samples only; an all-idle
		// sensor has no drying-rate section at all.
		if nz := nonZero(z.DryingRate); len(nz) > 0 {
			st := seriesStats(nz)
			zs.DryingRate = &st
		}

		s.Zones = append(s.Zones, zs)
	}

	return s
}

func seriesStats(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	return Stats{
		Min:  floats.Min(xs),
		Max:  floats.Max(xs),
		Mean: stat.Mean(xs, nil),
	}
}

func nonZero(xs []float64) []float64 {
	var out []float64
	for _, x := range xs {
		if x != 0 {
			out = append(out, x)
		}
	}
	return out
}

func distribution(values []string) []ValueCount {
	var order []string
	counts := make(map[string]int)
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]ValueCount, 0, len(order))
	for _, v := range order {
		out = append(out, ValueCount{Value: v, Count: counts[v]})
	}
	return out
}

func distinctPhases(records []types.TelemetryRecord) []string {
	seen := make(map[string]bool)
	var phases []string
	for i := range records {
		p := records[i].Phase
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		phases = append(phases, p)
	}
	sort.Strings(phases)
	return phases
}
