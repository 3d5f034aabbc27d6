package scoring

import "math"

// Per-category scoring policy: trams carry the highest per-node weight and
// cap, buses the lowest per-node weight. Every category is individually
// capped so no single one can saturate the 0-10 scale.
const (
	busPointsPerStop  = 0.4
	busCap            = 3.0
	tramPointsPerStop = 1.0
	tramCap           = 4.0
	veloPointsPerStop = 0.6
	veloCap           = 3.0

	maxTotalScore = 10.0

	// decayRate controls how fast a capped sub-score falls off with the
	// nearest node's distance relative to the search radius.
	decayRate = 2.0
)

// AccessibilityScore computes the composite 0-10 accessibility score for a
// point from the full node table. Nodes are filtered to the radius, grouped
// by category, and each category contributes a capped linear term decayed by
// the haversine distance to its nearest node. An empty table or an empty
// radius yields a zero score with zero details, not an error.
func AccessibilityScore(nodes []TransportNode, lat, lon, radiusKM float64) (float64, Details, error) {
	nearby, err := Nearby(nodes, lat, lon, radiusKM)
	if err != nil {
		return 0, Details{}, err
	}
	if len(nearby) == 0 {
		return 0, Details{}, nil
	}

	var details Details
	for _, nd := range nearby {
		// Nearest distances are reported with the geodetically correct
		// haversine figure, not the planar membership distance.
		distance := Haversine(lat, lon, nd.Node.Lat, nd.Node.Lon)

		switch nd.Node.Category {
		case CategoryBusStop:
			details.BusStops++
			details.ClosestBus = minDistance(details.ClosestBus, distance)
		case CategoryTramStop:
			details.TramStops++
			details.ClosestTram = minDistance(details.ClosestTram, distance)
		case CategoryVeloStation:
			details.VeloStations++
			details.ClosestVelo = minDistance(details.ClosestVelo, distance)
		}
	}

	busScore := subScore(details.BusStops, details.ClosestBus, busPointsPerStop, busCap, radiusKM)
	tramScore := subScore(details.TramStops, details.ClosestTram, tramPointsPerStop, tramCap, radiusKM)
	veloScore := subScore(details.VeloStations, details.ClosestVelo, veloPointsPerStop, veloCap, radiusKM)

	total := math.Min(maxTotalScore, busScore+tramScore+veloScore)
	return total, details, nil
}

// subScore computes one category's contribution: a linear term capped, then
// decayed by the proximity of the nearest node. Zero nodes means exactly
// zero; decay only ever applies to a nonzero capped term.
func subScore(count int, closest *float64, pointsPer, maxPoints, radiusKM float64) float64 {
	if count == 0 || closest == nil {
		return 0
	}
	score := math.Min(maxPoints, float64(count)*pointsPer)
	return score * math.Exp(-decayRate**closest/radiusKM)
}

func minDistance(current *float64, distance float64) *float64 {
	if current == nil || distance < *current {
		return &distance
	}
	return current
}
