package engine

// SoilParams holds the water-retention constants used to normalize raw
// volumetric water content into a depletion percentage.
type SoilParams struct {
	ThetaFC  float64 // field capacity, volumetric fraction
	ThetaPWP float64 // permanent wilting point, volumetric fraction
}

// DefaultSoilParams returns the AgriScan dashboard constants.
func DefaultSoilParams() SoilParams {
	return SoilParams{ThetaFC: 0.35, ThetaPWP: 0.15}
}

// ZoneSeries holds the parallel, tick-aligned metric sequences for one
// zone. All slices always have equal length: one element per record seen
// for the zone, in input order. Values are appended only, never reordered.
type ZoneSeries struct {
	ZoneID     string    `json:"zone_id"`
	TimesMin   []float64 `json:"times_min"`
	VWC        []float64 `json:"vwc"`        // theta * 100, percent
	Psi        []float64 `json:"psi"`        // matric potential, kPa
	AW         []float64 `json:"aw"`         // available water, mm
	Depletion  []float64 `json:"depletion"`  // percent, 0-100
	Raw        []float64 `json:"raw"`        // raw sensor counts
	Temp       []float64 `json:"temp"`       // degrees C
	Confidence []float64 `json:"confidence"` // percent
	DryingRate []float64 `json:"drying_rate"`
	Status     []string  `json:"status"`
	Regime     []string  `json:"regime"`
}

// Len returns the number of samples in the series.
func (z *ZoneSeries) Len() int {
	return len(z.TimesMin)
}

// ZoneMap is an insertion-ordered association of zone id to ZoneSeries.
// First-seen order makes every downstream traversal deterministic.
type ZoneMap struct {
	Order []string               `json:"order"`
	Zones map[string]*ZoneSeries `json:"zones"`
}

// NewZoneMap returns an empty zone map.
func NewZoneMap() *ZoneMap {
	return &ZoneMap{Zones: make(map[string]*ZoneSeries)}
}

// Get returns the series for a zone id, or nil if the zone is unknown.
func (m *ZoneMap) Get(id string) *ZoneSeries {
	return m.Zones[id]
}

// Len returns the number of zones.
func (m *ZoneMap) Len() int {
	return len(m.Order)
}

// ensure returns the series for id, creating and registering it on first use.
func (m *ZoneMap) ensure(id string) *ZoneSeries {
	if z, ok := m.Zones[id]; ok {
		return z
	}
	z := &ZoneSeries{ZoneID: id}
	m.Zones[id] = z
	m.Order = append(m.Order, id)
	return z
}

// MaxElapsed returns the maximum elapsed time in minutes across all zone
// series, or 0 if no zone has any samples.
func (m *ZoneMap) MaxElapsed() float64 {
	max := 0.0
	for _, id := range m.Order {
		for _, t := range m.Zones[id].TimesMin {
			if t > max {
				max = t
			}
		}
	}
	return max
}

// PhaseSegment is one contiguous run of a simulation phase.
type PhaseSegment struct {
	Name     string  `json:"name"`
	StartMin float64 `json:"start_min"`
	EndMin   float64 `json:"end_min"`
	Category string  `json:"category"` // healthy, critical, neutral
	Color    string  `json:"color"`
}

// PhaseAverage is the mean VWC observed while a phase was active,
// computed over records with non-zero theta.
type PhaseAverage struct {
	Name   string  `json:"name"`
	AvgVWC float64 `json:"avg_vwc"`
}

// TickBucket counts zone health at one sampling tick, bucketed by the
// record urgency tag.
type TickBucket struct {
	Tick     int64   `json:"tick"`
	TimeMin  float64 `json:"time_min"`
	Healthy  int     `json:"healthy"`
	Warning  int     `json:"warning"`
	Critical int     `json:"critical"`
	Unknown  int     `json:"unknown"`
}

// AggregateSeries is one cross-zone averaged metric, aligned to the
// timestamp sequence of the reference zone.
type AggregateSeries struct {
	Metric   string    `json:"metric"`
	TimesMin []float64 `json:"times_min"`
	Values   []float64 `json:"values"`
}

// Stats holds min/max/mean for one metric sequence.
type Stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ValueCount is one entry of a categorical frequency distribution,
// kept in first-seen order.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ZoneSummary holds the per-zone aggregates for the summary report.
type ZoneSummary struct {
	ZoneID     string       `json:"zone_id"`
	Samples    int          `json:"samples"`
	VWC        Stats        `json:"vwc"`
	Psi        Stats        `json:"psi"`
	AW         Stats        `json:"aw"`
	Depletion  Stats        `json:"depletion"`
	Raw        Stats        `json:"raw"`
	Confidence Stats        `json:"confidence"`
	DryingRate *Stats       `json:"drying_rate,omitempty"` // nil when no non-zero samples
	StatusDist []ValueCount `json:"status_dist"`
	RegimeDist []ValueCount `json:"regime_dist"`
}

// Summary is the overall run summary handed to the report writer.
type Summary struct {
	TotalRecords int           `json:"total_records"`
	DurationMin  float64       `json:"duration_min"`
	ActiveZones  int           `json:"active_zones"`
	Phases       []string      `json:"phases"`
	Zones        []ZoneSummary `json:"zones"`
}

// Results bundles everything one engine run produces.
type Results struct {
	Zones         *ZoneMap          `json:"zones"`
	Segments      []PhaseSegment    `json:"segments"`
	PhaseAverages []PhaseAverage    `json:"phase_averages"`
	Buckets       []TickBucket      `json:"buckets"`
	Aggregates    []AggregateSeries `json:"aggregates"`
	Summary       *Summary          `json:"summary"`
}
