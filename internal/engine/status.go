package engine

import (
	"sort"

	"github.com/agriscan/agriview/internal/types"
)

// BuildTickBuckets counts zone health per sampling tick from the record
// urgency tags. Every record contributes exactly one count to exactly one
// bucket of its tick. Buckets come back in ascending tick order.
func BuildTickBuckets(records []types.TelemetryRecord) []TickBucket {
	buckets := make(map[int64]*TickBucket)

	for i := range records {
		rec := &records[i]
		tick := rec.TickKey()

		b, ok := buckets[tick]
		if !ok {
			// time_min is assumed constant within a tick; the first
			// record's elapsed time stands for the whole bucket.
			b = &TickBucket{Tick: tick, TimeMin: rec.Elapsed()}
			buckets[tick] = b
		}

		urgency := rec.Urgency
		if urgency == "" {
			urgency = "none"
		}
		switch urgency {
		case "high":
			b.Critical++
		case "medium":
			b.Warning++
		case "low", "none":
			b.Healthy++
		default:
			b.Unknown++
		}
	}

	out := make([]TickBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}
