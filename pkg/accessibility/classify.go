// Package accessibility rates how well a location is connected to the rail
// network from the distance to its nearest served station and that station's
// average number of daily stops.
package accessibility

// Stop frequency thresholds assume an 18 hour operating day: a train every
// 15, 30 and 60 minutes respectively.
const (
	VeryGoodMaxDistanceKm = 3.0
	VeryGoodMinDailyStops = 72.0

	GoodMaxDistanceKm = 8.0
	GoodMinDailyStops = 36.0

	ModerateMaxDistanceKm = 12.0
	ModerateMinDailyStops = 18.0
)

type Threshold struct {
	Tier             Tier
	MaxDistanceKm    float64
	MinAvgDailyStops float64
}

var rules = []Threshold{
	{TierVeryGood, VeryGoodMaxDistanceKm, VeryGoodMinDailyStops},
	{TierGood, GoodMaxDistanceKm, GoodMinDailyStops},
	{TierModerate, ModerateMaxDistanceKm, ModerateMinDailyStops},
}

// ThresholdFor returns the bounds a cell has to meet for tier. TierPoor has none.
func ThresholdFor(tier Tier) (Threshold, bool) {
	for _, r := range rules {
		if r.Tier == tier {
			return r, true
		}
	}
	return Threshold{}, false
}

// Classify returns the first tier whose distance and frequency bounds are both
// met (inclusive), falling back to TierPoor.
func Classify(distanceKm float64, avgDailyStops float64) Tier {
	for _, r := range rules {
		if distanceKm <= r.MaxDistanceKm && avgDailyStops >= r.MinAvgDailyStops {
			return r.Tier
		}
	}

	return TierPoor
}
