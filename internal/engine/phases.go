package engine

import (
	"fmt"
	"strings"

	"github.com/agriscan/agriview/internal/types"
	"gonum.org/v1/gonum/stat"
)

// CategoryRule maps phase names to a health category by substring match
// against the lowercased name. Rules are checked in order; the first rule
// with a matching substring wins.
type CategoryRule struct {
	Substrings []string
	Category   string
	Color      string
}

// Category names shared by phase classification and status bucketing.
const (
	CategoryHealthy  = "healthy"
	CategoryCritical = "critical"
	CategoryNeutral  = "neutral"
)

// DefaultCategoryRules returns the AgriScan dashboard phase classification.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Substrings: []string{"irrigation", "wetting"}, Category: CategoryHealthy, Color: "#2E7D32"},
		{Substrings: []string{"drying", "drought", "drydown"}, Category: CategoryCritical, Color: "#C62828"},
	}
}

// neutralColor is the fallback for phases no rule matches.
const neutralColor = "#666666"

// Classify returns the category and color for a phase name.
func Classify(name string, rules []CategoryRule) (string, string) {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, sub := range rule.Substrings {
			if strings.Contains(lower, sub) {
				return rule.Category, rule.Color
			}
		}
	}
	return CategoryNeutral, neutralColor
}

// BuildTimeline compresses the per-record phase field into contiguous
// segments covering the full time range. A record opens a new segment when
// its phase differs from the open segment's name; a (tick, phase) pair
// already seen is skipped, so the repeated per-zone records within one tick
// never reopen a segment. Empty phases are ignored.
//
// The last segment ends at the maximum elapsed time across all zone series,
// or at the last record's elapsed time plus a one-minute pad when no zone
// data exists.
func BuildTimeline(records []types.TelemetryRecord, zones *ZoneMap, rules []CategoryRule) []PhaseSegment {
	var segments []PhaseSegment
	seen := make(map[string]bool)

	for i := range records {
		rec := &records[i]
		if rec.Phase == "" {
			continue
		}
		key := fmt.Sprintf("%d|%s", rec.TickKey(), rec.Phase)
		if seen[key] {
			continue
		}
		seen[key] = true

		if len(segments) > 0 && segments[len(segments)-1].Name == rec.Phase {
			continue
		}

		start := rec.Elapsed()
		if len(segments) > 0 {
			segments[len(segments)-1].EndMin = start
		}
		category, color := Classify(rec.Phase, rules)
		segments = append(segments, PhaseSegment{
			Name:     rec.Phase,
			StartMin: start,
			Category: category,
			Color:    color,
		})
	}

	if len(segments) == 0 {
		return nil
	}

	end := zones.MaxElapsed()
	if zones.Len() == 0 {
		end = records[len(records)-1].Elapsed() + 1.0
	}
	segments[len(segments)-1].EndMin = end

	return segments
}

// AverageVWCByPhase groups raw records by phase name, in first-seen order,
// and averages theta*100 over records with non-zero theta. A phase with no
// qualifying records averages to 0.
func AverageVWCByPhase(records []types.TelemetryRecord) []PhaseAverage {
	var order []string
	samples := make(map[string][]float64)

	for i := range records {
		rec := &records[i]
		if rec.Phase == "" {
			continue
		}
		if _, ok := samples[rec.Phase]; !ok {
			order = append(order, rec.Phase)
			samples[rec.Phase] = nil
		}
		if rec.Theta != 0 {
			samples[rec.Phase] = append(samples[rec.Phase], rec.Theta*100)
		}
	}

	averages := make([]PhaseAverage, 0, len(order))
	for _, name := range order {
		avg := 0.0
		if xs := samples[name]; len(xs) > 0 {
			avg = stat.Mean(xs, nil)
		}
		averages = append(averages, PhaseAverage{Name: name, AvgVWC: avg})
	}
	return averages
}
