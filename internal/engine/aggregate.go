package engine

// aggregateMetrics lists the metrics that are cross-zone averaged, with a
// selector into the zone series.
var aggregateMetrics = []struct {
	name   string
	series func(*ZoneSeries) []float64
}{
	{"vwc", func(z *ZoneSeries) []float64 { return z.VWC }},
	{"psi", func(z *ZoneSeries) []float64 { return z.Psi }},
	{"aw", func(z *ZoneSeries) []float64 { return z.AW }},
	{"depletion", func(z *ZoneSeries) []float64 { return z.Depletion }},
	{"confidence", func(z *ZoneSeries) []float64 { return z.Confidence }},
	{"drying_rate", func(z *ZoneSeries) []float64 { return z.DryingRate }},
}

// AlignAverage computes element-wise cross-zone averages for the fixed
// metric set, aligned to the timestamp sequence of the first-seen zone.
//
// A zone whose series is shorter than the reference contributes 0 beyond
// its length, and the divisor stays the total zone count. That zero-fill
// tail policy biases the average low near the tail for unequal-length
// zones; it reproduces the source behavior on purpose.
//
// Drying-rate indices whose averaged value is exactly zero are dropped
// before presentation, so sensor idle periods do not plot as data.
func AlignAverage(zones *ZoneMap) []AggregateSeries {
	if zones.Len() == 0 {
		return nil
	}

	ref := zones.Zones[zones.Order[0]]
	n := ref.Len()
	count := float64(zones.Len())

	out := make([]AggregateSeries, 0, len(aggregateMetrics))
	for _, m := range aggregateMetrics {
		agg := AggregateSeries{
			Metric:   m.name,
			TimesMin: make([]float64, 0, n),
			Values:   make([]float64, 0, n),
		}

		for i := 0; i < n; i++ {
			sum := 0.0
			for _, id := range zones.Order {
				series := m.series(zones.Zones[id])
				if i < len(series) {
					sum += series[i]
				}
			}
			avg := sum / count

			if m.name == "drying_rate" && avg == 0 {
				continue
			}
			agg.TimesMin = append(agg.TimesMin, ref.TimesMin[i])
			agg.Values = append(agg.Values, avg)
		}

		out = append(out, agg)
	}
	return out
}
