package engine

import (
	"math"
	"testing"

	"github.com/agriscan/agriview/internal/types"
)

func phaseRec(zone string, timeMs int64, theta float64, phase string) types.TelemetryRecord {
	return types.TelemetryRecord{Zone: zone, Time: timeMs, Theta: theta, Phase: phase}
}

func TestBuildTimelineSegments(t *testing.T) {
	records := []types.TelemetryRecord{
		phaseRec("A", 0, 0.30, "wetting"),
		phaseRec("A", 60000, 0.31, "wetting"),
		phaseRec("A", 120000, 0.29, "drydown"),
	}
	zones := ExtractZones(records, DefaultSoilParams())

	segments := BuildTimeline(records, zones, DefaultCategoryRules())

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	wetting := segments[0]
	if wetting.Name != "wetting" || wetting.Category != CategoryHealthy {
		t.Errorf("first segment should be healthy wetting, got %+v", wetting)
	}
	if wetting.StartMin != 0 || wetting.EndMin != 2.0 {
		t.Errorf("wetting should span [0, 2), got [%v, %v)", wetting.StartMin, wetting.EndMin)
	}

	drydown := segments[1]
	if drydown.Name != "drydown" || drydown.Category != CategoryCritical {
		t.Errorf("second segment should be critical drydown, got %+v", drydown)
	}
	if drydown.StartMin != 2.0 || drydown.EndMin != zones.MaxElapsed() {
		t.Errorf("drydown should span [2, max), got [%v, %v)", drydown.StartMin, drydown.EndMin)
	}
}

func TestBuildTimelineSameTickDuplicates(t *testing.T) {
	// Multiple zones report the same phase within one tick; the timeline
	// must not reopen a segment per zone.
	records := []types.TelemetryRecord{
		phaseRec("A", 0, 0.3, "irrigation_pulse"),
		phaseRec("B", 0, 0.3, "irrigation_pulse"),
		phaseRec("A", 60000, 0.3, "irrigation_pulse"),
		phaseRec("B", 60000, 0.3, "irrigation_pulse"),
	}
	zones := ExtractZones(records, DefaultSoilParams())

	segments := BuildTimeline(records, zones, DefaultCategoryRules())
	if len(segments) != 1 {
		t.Fatalf("consecutive same-phase ticks should merge into 1 segment, got %d", len(segments))
	}
}

func TestBuildTimelinePhaseReentry(t *testing.T) {
	records := []types.TelemetryRecord{
		phaseRec("A", 0, 0.3, "wetting"),
		phaseRec("A", 60000, 0.3, "drydown"),
		phaseRec("A", 120000, 0.3, "wetting"),
	}
	zones := ExtractZones(records, DefaultSoilParams())

	segments := BuildTimeline(records, zones, DefaultCategoryRules())
	if len(segments) != 3 {
		t.Fatalf("re-entering a phase at a later tick should open a new segment, got %d segments", len(segments))
	}
	if segments[2].Name != "wetting" {
		t.Errorf("last segment should be the re-entered wetting phase, got %q", segments[2].Name)
	}
}

func TestBuildTimelineEmptyPhasesIgnored(t *testing.T) {
	records := []types.TelemetryRecord{
		phaseRec("A", 0, 0.3, "wetting"),
		phaseRec("A", 60000, 0.3, ""),
		phaseRec("A", 120000, 0.3, "wetting"),
	}
	zones := ExtractZones(records, DefaultSoilParams())

	segments := BuildTimeline(records, zones, DefaultCategoryRules())
	if len(segments) != 1 {
		t.Fatalf("empty phases must not close segments, got %d segments", len(segments))
	}
}

func TestBuildTimelineNoZoneDataPad(t *testing.T) {
	// Records carry a phase but no zone id, so there is no zone series to
	// take the end time from; the last segment gets a one-minute pad.
	records := []types.TelemetryRecord{
		{Time: 0, Phase: "observation"},
		{Time: 180000, Phase: "observation"},
	}
	zones := ExtractZones(records, DefaultSoilParams())

	segments := BuildTimeline(records, zones, DefaultCategoryRules())
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if got := segments[0].EndMin; got != 4.0 {
		t.Errorf("end should be last elapsed + 1 min pad = 4.0, got %v", got)
	}
}

func TestBuildTimelineEmptyInput(t *testing.T) {
	zones := NewZoneMap()
	if segments := BuildTimeline(nil, zones, DefaultCategoryRules()); segments != nil {
		t.Errorf("no phases should yield nil timeline, got %v", segments)
	}
}

func TestClassify(t *testing.T) {
	rules := DefaultCategoryRules()

	tests := []struct {
		name string
		want string
	}{
		{"irrigation_pulse", CategoryHealthy},
		{"Wetting_Front", CategoryHealthy},
		{"controlled_drying", CategoryCritical},
		{"DROUGHT_stress", CategoryCritical},
		{"drydown", CategoryCritical},
		{"steady_state", CategoryNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Classify(tt.name, rules)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAverageVWCByPhase(t *testing.T) {
	records := []types.TelemetryRecord{
		phaseRec("A", 0, 0.20, "wetting"),
		phaseRec("A", 60000, 0.40, "wetting"),
		phaseRec("A", 120000, 0.0, "drydown"), // zero theta does not qualify
		phaseRec("A", 180000, 0.30, "drydown"),
		phaseRec("A", 240000, 0.0, "idle"), // no qualifying records at all
	}

	averages := AverageVWCByPhase(records)
	if len(averages) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(averages))
	}

	want := map[string]float64{"wetting": 30, "drydown": 30, "idle": 0}
	for _, pa := range averages {
		if math.Abs(pa.AvgVWC-want[pa.Name]) > 1e-9 {
			t.Errorf("%s: expected avg %v, got %v", pa.Name, want[pa.Name], pa.AvgVWC)
		}
	}

	// First-seen order.
	if averages[0].Name != "wetting" || averages[1].Name != "drydown" || averages[2].Name != "idle" {
		t.Errorf("phase averages should keep first-seen order, got %v", averages)
	}
}
