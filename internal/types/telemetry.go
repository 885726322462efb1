package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ScalarKind discriminates the three shapes a loosely-typed telemetry
// scalar can arrive in.
type ScalarKind int

const (
	ScalarAbsent ScalarKind = iota
	ScalarNumber
	ScalarText
)

// Scalar is a telemetry field that upstream sensors emit as a number, a
// numeric string, null, or not at all. Coercion to float64 never fails:
// anything unparseable falls back to the caller's default.
type Scalar struct {
	Kind ScalarKind
	Num  float64
	Text string
}

// UnmarshalJSON accepts numbers, strings, and null. Any other JSON shape
// is treated as absent rather than rejected; telemetry sources are
// unreliable and a bad field must not sink the whole record.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.Kind = ScalarAbsent
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			s.Kind = ScalarAbsent
			return nil
		}
		s.Kind = ScalarText
		s.Text = str
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		s.Kind = ScalarAbsent
		return nil
	}
	s.Kind = ScalarNumber
	s.Num = num
	return nil
}

// MarshalJSON round-trips the coerced value; absent marshals as null.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ScalarNumber:
		return json.Marshal(s.Num)
	case ScalarText:
		return json.Marshal(s.Text)
	default:
		return []byte("null"), nil
	}
}

// Float64 coerces the scalar to a number. Absent values and strings that
// fail to parse yield def.
func (s Scalar) Float64(def float64) float64 {
	switch s.Kind {
	case ScalarNumber:
		return s.Num
	case ScalarText:
		if v, err := strconv.ParseFloat(s.Text, 64); err == nil {
			return v
		}
		return def
	default:
		return def
	}
}

// Float coerces with a default of zero.
func (s Scalar) Float() float64 {
	return s.Float64(0)
}

// TelemetryRecord is one sensor observation for one zone at one sampling
// tick, as exported by the AgriScan dashboard. All fields except Zone and
// Time are optional; Temp, Confidence and DryingRate arrive typed
// inconsistently across firmware versions and are modeled as Scalar.
// Records are loaded once and never mutated by the engine.
type TelemetryRecord struct {
	Zone       string   `json:"zone"`
	Time       int64    `json:"time"`
	Tick       *int64   `json:"tick,omitempty"`
	ElapsedMin *float64 `json:"elapsed_min,omitempty"`
	Theta      float64  `json:"theta"`
	PsiKPa     float64  `json:"psi_kPa"`
	AWmm       float64  `json:"AW_mm"`
	Status     string   `json:"status,omitempty"`
	Regime     string   `json:"regime,omitempty"`
	Urgency    string   `json:"urgency,omitempty"`
	Phase      string   `json:"phase,omitempty"`
	Raw        int64    `json:"raw"`
	Temp       Scalar   `json:"temp"`
	Confidence Scalar   `json:"confidence"`
	DryingRate Scalar   `json:"dryingRate_per_hr"`
}

// Elapsed returns the record's elapsed time in minutes: the explicit
// elapsed_min field when present, otherwise derived from the millisecond
// timestamp.
func (r *TelemetryRecord) Elapsed() float64 {
	if r.ElapsedMin != nil {
		return *r.ElapsedMin
	}
	return float64(r.Time) / 60000.0
}

// TickKey returns the sampling-instant identifier shared by all zone
// records captured at the same moment: the explicit tick when present,
// otherwise the millisecond timestamp.
func (r *TelemetryRecord) TickKey() int64 {
	if r.Tick != nil {
		return *r.Tick
	}
	return r.Time
}
