package engine

import (
	"github.com/agriscan/agriview/internal/types"
)

// ExtractZones groups records by zone id and derives the per-zone metric
// series. Records without a zone id are dropped silently. Append order is
// input order; the extractor never re-sorts by time.
func ExtractZones(records []types.TelemetryRecord, soil SoilParams) *ZoneMap {
	zones := NewZoneMap()

	for i := range records {
		rec := &records[i]
		if rec.Zone == "" {
			continue
		}

		z := zones.ensure(rec.Zone)
		z.TimesMin = append(z.TimesMin, rec.Elapsed())
		z.VWC = append(z.VWC, rec.Theta*100)
		z.Psi = append(z.Psi, rec.PsiKPa)
		z.AW = append(z.AW, rec.AWmm)
		z.Depletion = append(z.Depletion, Depletion(rec.Theta, soil))
		z.Raw = append(z.Raw, float64(rec.Raw))
		z.Temp = append(z.Temp, rec.Temp.Float())
		// Confidence and drying rate are stored percentage-scaled.
		z.Confidence = append(z.Confidence, rec.Confidence.Float()*100)
		z.DryingRate = append(z.DryingRate, rec.DryingRate.Float()*100)
		z.Status = append(z.Status, orUnknown(rec.Status))
		z.Regime = append(z.Regime, orUnknown(rec.Regime))
	}

	return zones
}

// Depletion normalizes a volumetric water content reading into the 0-100
// depletion percentage between field capacity and wilting point.
func Depletion(theta float64, soil SoilParams) float64 {
	span := soil.ThetaFC - soil.ThetaPWP
	if span <= 0 {
		return 0
	}
	d := (soil.ThetaFC - theta) / span * 100
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
