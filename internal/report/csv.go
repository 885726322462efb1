package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agriscan/agriview/internal/engine"
)

// ExportChartData writes the plottable series to CSV files in dir: one
// file per zone metric set, plus the phase timeline, the status buckets,
// and the cross-zone aggregates. These replace the rendered charts of the
// original tooling; rendering itself is out of scope.
func ExportChartData(dir string, results *engine.Results) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"series_zones.csv", func(w io.Writer) error { return WriteZoneSeriesCSV(w, results.Zones) }},
		{"series_aggregate.csv", func(w io.Writer) error { return WriteAggregateCSV(w, results.Aggregates) }},
		{"phase_timeline.csv", func(w io.Writer) error { return WritePhaseCSV(w, results.Segments, results.PhaseAverages) }},
		{"status_buckets.csv", func(w io.Writer) error { return WriteStatusCSV(w, results.Buckets) }},
	}

	for _, out := range writers {
		path := filepath.Join(dir, out.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := out.write(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
	}
	return nil
}

// WriteZoneSeriesCSV writes one row per zone sample in long form.
func WriteZoneSeriesCSV(w io.Writer, zones *engine.ZoneMap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"zone", "time_min", "vwc", "psi_kpa", "aw_mm", "depletion", "raw", "confidence", "drying_rate", "status", "regime"}); err != nil {
		return err
	}

	for _, id := range zones.Order {
		z := zones.Zones[id]
		for i := 0; i < z.Len(); i++ {
			row := []string{
				id,
				fm(z.TimesMin[i]),
				fm(z.VWC[i]),
				fm(z.Psi[i]),
				fm(z.AW[i]),
				fm(z.Depletion[i]),
				fm(z.Raw[i]),
				fm(z.Confidence[i]),
				fm(z.DryingRate[i]),
				z.Status[i],
				z.Regime[i],
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAggregateCSV writes the cross-zone averaged series in long form.
func WriteAggregateCSV(w io.Writer, aggs []engine.AggregateSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "time_min", "value"}); err != nil {
		return err
	}
	for _, agg := range aggs {
		for i := range agg.TimesMin {
			if err := cw.Write([]string{agg.Metric, fm(agg.TimesMin[i]), fm(agg.Values[i])}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePhaseCSV writes the compressed phase timeline with the per-phase
// average VWC joined in by name.
func WritePhaseCSV(w io.Writer, segments []engine.PhaseSegment, averages []engine.PhaseAverage) error {
	avgByName := make(map[string]float64, len(averages))
	for _, pa := range averages {
		avgByName[pa.Name] = pa.AvgVWC
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"phase", "start_min", "end_min", "category", "color", "avg_vwc"}); err != nil {
		return err
	}
	for _, seg := range segments {
		row := []string{seg.Name, fm(seg.StartMin), fm(seg.EndMin), seg.Category, seg.Color, fm(avgByName[seg.Name])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatusCSV writes the per-tick health buckets.
func WriteStatusCSV(w io.Writer, buckets []engine.TickBucket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "time_min", "healthy", "warning", "critical", "unknown"}); err != nil {
		return err
	}
	for _, b := range buckets {
		row := []string{
			strconv.FormatInt(b.Tick, 10),
			fm(b.TimeMin),
			strconv.Itoa(b.Healthy),
			strconv.Itoa(b.Warning),
			strconv.Itoa(b.Critical),
			strconv.Itoa(b.Unknown),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
