package scoring

import "sort"

// The discrete grading variant scores each category by nearest distance only,
// through a step function, and combines them with fixed weights into a 0-100
// score and a letter grade. It is an alternate policy to AccessibilityScore;
// the two are not comparable and are never mixed.

const gradeSearchRadiusKM = 1.0

// GradeOptions controls which nodes participate in grading.
type GradeOptions struct {
	// ExcludeCategories drops nodes of the listed categories entirely.
	ExcludeCategories []Category
	// IncludeUnnamed keeps nodes with an empty name. Off by default:
	// unnamed OSM nodes are usually platforms or import artifacts.
	IncludeUnnamed bool
	// IncludeStopPositions keeps raw stop_position nodes, a low-level OSM
	// concept distinct from a named stop.
	IncludeStopPositions bool
}

// GradeResult is the outcome of the discrete grading policy.
type GradeResult struct {
	BusScore     int            `json:"busScore"`
	TramScore    int            `json:"tramScore"`
	VeloScore    int            `json:"velobikeScore"`
	OverallScore float64        `json:"overallScore"`
	OverallGrade string         `json:"overallGrade"`
	Nearby       []NodeDistance `json:"nearbyTransport"`
}

// AreaGrade grades a location by proximity to the nearest node of each
// category within 1 km, using haversine distances throughout. Counts are
// ignored: only the closest node per category matters.
func AreaGrade(nodes []TransportNode, lat, lon float64, opts GradeOptions) GradeResult {
	excluded := make(map[Category]bool, len(opts.ExcludeCategories))
	for _, c := range opts.ExcludeCategories {
		excluded[c] = true
	}

	var nearby []NodeDistance
	for _, node := range nodes {
		if excluded[node.Category] {
			continue
		}
		if !opts.IncludeUnnamed && node.Name == "" {
			continue
		}
		if !opts.IncludeStopPositions && node.Category == CategoryStopPosition {
			continue
		}
		distance := Haversine(lat, lon, node.Lat, node.Lon)
		if distance <= gradeSearchRadiusKM {
			nearby = append(nearby, NodeDistance{Node: node, DistanceKM: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})

	result := GradeResult{Nearby: nearby}
	for _, nd := range nearby {
		switch nd.Node.Category {
		case CategoryBusStop:
			if result.BusScore == 0 {
				result.BusScore = proximityScore(nd.DistanceKM)
			}
		case CategoryTramStop:
			if result.TramScore == 0 {
				result.TramScore = proximityScore(nd.DistanceKM)
			}
		case CategoryVeloStation:
			if result.VeloScore == 0 {
				result.VeloScore = proximityScore(nd.DistanceKM)
			}
		}
	}

	overall := float64(result.BusScore)*0.4 +
		float64(result.TramScore)*0.4 +
		float64(result.VeloScore)*0.2
	if overall > 100 {
		overall = 100
	}
	result.OverallScore = overall
	result.OverallGrade = letterGrade(overall)

	return result
}

// proximityScore maps a distance to a 0-100 step score.
func proximityScore(distanceKM float64) int {
	switch {
	case distanceKM < 0.1:
		return 100
	case distanceKM < 0.25:
		return 90
	case distanceKM < 0.5:
		return 80
	case distanceKM < 0.75:
		return 70
	case distanceKM < 1.0:
		return 60
	default:
		return 0
	}
}

func letterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 50:
		return "C"
	case score >= 40:
		return "C-"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}
