// Package report renders engine results into the text summary report and
// plottable chart-data files. It owns presentation only; all numbers come
// in precomputed.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agriscan/agriview/internal/engine"
)

const bannerWidth = 70

// WriteSummary renders the summary in the layout of the AgriScan
// simulation report: banner, run overview, then per-zone statistics.
// Percentages carry one decimal place, rates two.
func WriteSummary(w io.Writer, s *engine.Summary, runID string) error {
	banner := strings.Repeat("=", bannerWidth)
	rule := strings.Repeat("-", bannerWidth)

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "AGRISCAN SIMULATION SUMMARY REPORT")
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)

	if runID != "" {
		fmt.Fprintf(w, "Run ID: %s\n", runID)
	}
	fmt.Fprintf(w, "Total data points: %d\n", s.TotalRecords)
	fmt.Fprintf(w, "Simulation duration: %.1f minutes\n", s.DurationMin)
	if len(s.Phases) > 0 {
		fmt.Fprintf(w, "Phases observed: %s\n", strings.Join(s.Phases, ", "))
	}

	fmt.Fprintf(w, "\nActive zones: %d\n", s.ActiveZones)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ZONE STATISTICS")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	if len(s.Zones) == 0 {
		fmt.Fprintln(w, "No zone data available.")
	}
	for _, z := range s.Zones {
		writeZone(w, &z)
	}

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "End of Report")
	fmt.Fprintln(w, banner)
	return nil
}

func writeZone(w io.Writer, z *engine.ZoneSummary) {
	fmt.Fprintf(w, "Zone %s (%d samples):\n", z.ZoneID, z.Samples)
	fmt.Fprintf(w, "  VWC: min=%.1f%%, max=%.1f%%, avg=%.1f%%\n", z.VWC.Min, z.VWC.Max, z.VWC.Mean)
	fmt.Fprintf(w, "  Matric Potential: min=%.1f kPa, max=%.1f kPa, avg=%.1f kPa\n", z.Psi.Min, z.Psi.Max, z.Psi.Mean)
	fmt.Fprintf(w, "  Available Water: min=%.1f mm, max=%.1f mm, avg=%.1f mm\n", z.AW.Min, z.AW.Max, z.AW.Mean)
	fmt.Fprintf(w, "  Depletion: min=%.1f%%, max=%.1f%%, avg=%.1f%%\n", z.Depletion.Min, z.Depletion.Max, z.Depletion.Mean)
	fmt.Fprintf(w, "  Raw counts: min=%.0f, max=%.0f, avg=%.1f\n", z.Raw.Min, z.Raw.Max, z.Raw.Mean)
	fmt.Fprintf(w, "  Confidence: min=%.1f%%, max=%.1f%%, avg=%.1f%%\n", z.Confidence.Min, z.Confidence.Max, z.Confidence.Mean)
	if z.DryingRate != nil {
		fmt.Fprintf(w, "  Drying Rate: min=%.2f, max=%.2f, avg=%.2f %%/hr\n",
			z.DryingRate.Min, z.DryingRate.Max, z.DryingRate.Mean)
	}
	fmt.Fprintf(w, "  Status distribution: %s\n", formatDist(z.StatusDist))
	fmt.Fprintf(w, "  Regime distribution: %s\n", formatDist(z.RegimeDist))
	fmt.Fprintln(w)
}

func formatDist(dist []engine.ValueCount) string {
	if len(dist) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(dist))
	for _, vc := range dist {
		parts = append(parts, fmt.Sprintf("%s: %d", vc.Value, vc.Count))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
