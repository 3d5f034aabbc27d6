package scoring

import "errors"

// ErrInvalidRadius is returned when a caller passes a non-positive search
// radius. Radius range policy beyond positivity (for example the API's
// 0.1–5.0 km contract) belongs to the caller.
var ErrInvalidRadius = errors.New("search radius must be positive")

// Nearby returns all nodes within radiusKM of the query point, each paired
// with its planar-approximation distance. A bounding box discards obviously
// distant nodes before any exact distance math. Output order is unspecified;
// callers sort as needed. An empty node table yields an empty result, never
// an error.
func Nearby(nodes []TransportNode, lat, lon, radiusKM float64) ([]NodeDistance, error) {
	if radiusKM <= 0 {
		return nil, ErrInvalidRadius
	}

	bounds := BoundsForRadius(lat, lon, radiusKM)

	var nearby []NodeDistance
	for _, node := range nodes {
		if !bounds.Contains(node.Lat, node.Lon) {
			continue
		}
		distance := PlanarDistance(lat, lon, node.Lat, node.Lon)
		if distance <= radiusKM {
			nearby = append(nearby, NodeDistance{Node: node, DistanceKM: distance})
		}
	}

	return nearby, nil
}
