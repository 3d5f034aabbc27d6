package scoring

import "math"

const (
	// earthRadiusKM is the mean radius used by the haversine formula.
	earthRadiusKM = 6371.0

	// kmPerDegree is the equirectangular approximation used by the bounding
	// box pre-filter and the planar distance. Valid at city scale only.
	kmPerDegree = 111.0
)

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees. This is the geodetically correct figure
// used for nearest-distance reporting and the decay formula.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	dPhi := degToRad(lat2 - lat1)
	dLambda := degToRad(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// PlanarDistance returns an equirectangular approximation of the distance in
// kilometers between two points. The longitude delta is scaled by the cosine
// of the query latitude to correct for meridian convergence. Cheaper than
// Haversine and acceptable for radius membership tests at ≤5 km in a single
// city; do not use it for distances shown to users.
func PlanarDistance(queryLat, queryLon, lat, lon float64) float64 {
	dLat := (lat - queryLat) * kmPerDegree
	dLon := (lon - queryLon) * kmPerDegree * math.Cos(degToRad(queryLat))
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// BoundingBox is the rectangular pre-filter region around a query point. The
// box is a superset of the radius circle; membership still needs an exact
// distance check.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundsForRadius returns the bounding box covering radiusKM around a point.
func BoundsForRadius(lat, lon, radiusKM float64) BoundingBox {
	radiusDeg := radiusKM / kmPerDegree
	return BoundingBox{
		MinLat: lat - radiusDeg,
		MaxLat: lat + radiusDeg,
		MinLon: lon - radiusDeg,
		MaxLon: lon + radiusDeg,
	}
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// CircleRing returns a closed ring of [lat, lon] pairs approximating the
// radius circle around a point, for map display. The first point is repeated
// at the end. Segments must be at least 3.
func CircleRing(lat, lon, radiusKM float64, segments int) [][]float64 {
	if segments < 3 {
		segments = 3
	}

	latDeg := radiusKM / kmPerDegree
	lonDeg := radiusKM / (kmPerDegree * math.Cos(degToRad(lat)))

	ring := make([][]float64, 0, segments+1)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring = append(ring, []float64{
			lat + latDeg*math.Sin(theta),
			lon + lonDeg*math.Cos(theta),
		})
	}
	ring = append(ring, ring[0])

	return ring
}
