package engine

import (
	"math"
	"testing"

	"github.com/agriscan/agriview/internal/types"
)

func TestBuildSummaryOverview(t *testing.T) {
	records := []types.TelemetryRecord{
		{Zone: "B", Time: 0, Theta: 0.30, Phase: "wetting", Status: "ok", Regime: "steady"},
		{Zone: "A", Time: 0, Theta: 0.20, Phase: "wetting", Status: "ok", Regime: "steady"},
		{Zone: "B", Time: 120000, Theta: 0.25, Phase: "drydown", Status: "stress", Regime: "drying"},
		{Zone: "A", Time: 120000, Theta: 0.10, Phase: "drydown", Status: "ok", Regime: "drying"},
	}
	zones := ExtractZones(records, DefaultSoilParams())

	s := BuildSummary(records, zones)

	if s.TotalRecords != 4 {
		t.Errorf("total records: expected 4, got %d", s.TotalRecords)
	}
	if s.DurationMin != 2.0 {
		t.Errorf("duration: expected 2.0, got %v", s.DurationMin)
	}
	if s.ActiveZones != 2 {
		t.Errorf("active zones: expected 2, got %d", s.ActiveZones)
	}

	// Distinct phases, sorted.
	if len(s.Phases) != 2 || s.Phases[0] != "drydown" || s.Phases[1] != "wetting" {
		t.Errorf("phases should be sorted distinct names, got %v", s.Phases)
	}

	// Zone sections sorted by id even though B was seen first.
	if len(s.Zones) != 2 || s.Zones[0].ZoneID != "A" || s.Zones[1].ZoneID != "B" {
		t.Errorf("zone summaries should be sorted by id, got %v", s.Zones)
	}

	a := s.Zones[0]
	if a.Samples != 2 {
		t.Errorf("zone A samples: expected 2, got %d", a.Samples)
	}
	if math.Abs(a.VWC.Min-10) > 1e-9 || math.Abs(a.VWC.Max-20) > 1e-9 || math.Abs(a.VWC.Mean-15) > 1e-9 {
		t.Errorf("zone A VWC stats wrong: %+v", a.VWC)
	}

	b := s.Zones[1]
	wantDist := []ValueCount{{Value: "ok", Count: 1}, {Value: "stress", Count: 1}}
	if len(b.StatusDist) != len(wantDist) {
		t.Fatalf("zone B status distribution: %v", b.StatusDist)
	}
	for i, vc := range wantDist {
		if b.StatusDist[i] != vc {
			t.Errorf("status dist[%d]: expected %+v, got %+v", i, vc, b.StatusDist[i])
		}
	}
}

func TestBuildSummaryDryingRate(t *testing.T) {
	idle := types.TelemetryRecord{Zone: "idle", Time: 0}
	active1 := types.TelemetryRecord{
		Zone: "active", Time: 0,
		DryingRate: types.Scalar{Kind: types.ScalarNumber, Num: 0.02},
	}
	active2 := types.TelemetryRecord{Zone: "active", Time: 60000} // zero sample
	records := []types.TelemetryRecord{idle, active1, active2}

	zones := ExtractZones(records, DefaultSoilParams())
	s := BuildSummary(records, zones)

	for _, zs := range s.Zones {
		switch zs.ZoneID {
		case "idle":
			if zs.DryingRate != nil {
				t.Errorf("zone with no non-zero drying samples should omit the stats, got %+v", zs.DryingRate)
			}
		case "active":
			if zs.DryingRate == nil {
				t.Fatal("zone with a non-zero drying sample should report stats")
			}
			// Stored values are x100 the raw fraction-per-hour, and the
			// zero sample is excluded.
			if math.Abs(zs.DryingRate.Mean-2.0) > 1e-9 {
				t.Errorf("drying rate mean: expected 2.0, got %v", zs.DryingRate.Mean)
			}
		}
	}
}

func TestBuildSummaryNoZones(t *testing.T) {
	records := []types.TelemetryRecord{{Time: 0, Phase: "obs"}}
	zones := ExtractZones(records, DefaultSoilParams())

	s := BuildSummary(records, zones)
	if s.DurationMin != 0 {
		t.Errorf("duration with no zones should be 0, got %v", s.DurationMin)
	}
	if s.ActiveZones != 0 || len(s.Zones) != 0 {
		t.Errorf("no zones expected, got %+v", s)
	}
}
