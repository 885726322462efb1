package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agriscan/agriview/internal/engine"
	"github.com/agriscan/agriview/internal/types"
)

func testResults() *engine.Results {
	records := []types.TelemetryRecord{
		{Zone: "A", Time: 0, Theta: 0.30, PsiKPa: -10, AWmm: 20, Phase: "wetting", Status: "ok", Regime: "steady",
			Confidence: types.Scalar{Kind: types.ScalarNumber, Num: 0.9}},
		{Zone: "A", Time: 60000, Theta: 0.22, PsiKPa: -35, AWmm: 12, Phase: "drydown", Status: "stress", Regime: "drying",
			DryingRate: types.Scalar{Kind: types.ScalarNumber, Num: 0.0125}},
	}
	e := engine.New(engine.DefaultSoilParams(), nil, nil)
	return e.Run(records)
}

func TestWriteSummaryLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, testResults().Summary, "run-1"); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"AGRISCAN SIMULATION SUMMARY REPORT",
		"Run ID: run-1",
		"Total data points: 2",
		"Simulation duration: 1.0 minutes",
		"Active zones: 1",
		"ZONE STATISTICS",
		"Zone A (2 samples):",
		"VWC: min=22.0%, max=30.0%, avg=26.0%",
		"Status distribution: {ok: 1, stress: 1}",
		// 0.0125/hr stored x100, two decimals for rates
		"Drying Rate: min=1.25, max=1.25, avg=1.25 %/hr",
		"End of Report",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n---\n%s", want, out)
		}
	}
}

func TestWriteSummaryOmitsDryingRateWhenIdle(t *testing.T) {
	records := []types.TelemetryRecord{
		{Zone: "A", Time: 0, Theta: 0.30},
	}
	results := engine.New(engine.DefaultSoilParams(), nil, nil).Run(records)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, results.Summary, ""); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if strings.Contains(buf.String(), "Drying Rate") {
		t.Error("drying-rate line should be omitted when no non-zero samples exist")
	}
}

func TestWriteSummaryNoZones(t *testing.T) {
	results := engine.New(engine.DefaultSoilParams(), nil, nil).Run(nil)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, results.Summary, ""); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No zone data available.") {
		t.Error("empty run should report no data instead of failing")
	}
}

func TestWriteZoneSeriesCSV(t *testing.T) {
	results := testResults()

	var buf bytes.Buffer
	if err := WriteZoneSeriesCSV(&buf, results.Zones); err != nil {
		t.Fatalf("WriteZoneSeriesCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 3 { // header + 2 samples
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "A" || rows[1][1] != "0" {
		t.Errorf("first sample row wrong: %v", rows[1])
	}
}

func TestWriteStatusCSV(t *testing.T) {
	results := testResults()

	var buf bytes.Buffer
	if err := WriteStatusCSV(&buf, results.Buckets); err != nil {
		t.Fatalf("WriteStatusCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 3 { // header + 2 ticks
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}

func TestExportChartData(t *testing.T) {
	dir := t.TempDir()
	if err := ExportChartData(dir, testResults()); err != nil {
		t.Fatalf("ExportChartData: %v", err)
	}

	for _, name := range []string{"series_zones.csv", "series_aggregate.csv", "phase_timeline.csv", "status_buckets.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}
