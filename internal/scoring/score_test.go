package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessibilityScoreEmptyTable(t *testing.T) {
	score, details, err := AccessibilityScore(nil, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0, details.BusStops)
	assert.Equal(t, 0, details.TramStops)
	assert.Equal(t, 0, details.VeloStations)
	assert.Nil(t, details.ClosestBus)
	assert.Nil(t, details.ClosestTram)
	assert.Nil(t, details.ClosestVelo)
}

func TestAccessibilityScoreNothingInRadius(t *testing.T) {
	nodes := []TransportNode{nodeAtOffset(1, CategoryBusStop, "Far", 4.0, 0)}

	score, details, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, Details{}, details)
}

func TestAccessibilityScoreInvalidRadius(t *testing.T) {
	_, _, err := AccessibilityScore(nil, antwerpLat, antwerpLon, -0.5)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

// One bus stop at 0.05 km and one tram stop at 0.3 km within a 1 km radius:
// bus contributes 0.4*exp(-0.1) ≈ 0.362, tram 1.0*exp(-0.6) ≈ 0.549.
func TestAccessibilityScoreWorkedExample(t *testing.T) {
	nodes := []TransportNode{
		nodeAtOffset(1, CategoryBusStop, "Sint-Jacob", 0.05, 0),
		nodeAtOffset(2, CategoryTramStop, "Melkmarkt", 0.3, 0),
	}

	score, details, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 1, details.BusStops)
	assert.Equal(t, 1, details.TramStops)
	assert.Equal(t, 0, details.VeloStations)
	require.NotNil(t, details.ClosestBus)
	require.NotNil(t, details.ClosestTram)
	assert.Nil(t, details.ClosestVelo)
	assert.InDelta(t, 0.05, *details.ClosestBus, 1e-3)
	assert.InDelta(t, 0.3, *details.ClosestTram, 1e-3)

	assert.InDelta(t, 0.911, score, 0.01)
}

// Ten bus stops all effectively on top of the query point cap at 3.0 and
// decay by exp(-0.02).
func TestAccessibilityScoreCapThenDecay(t *testing.T) {
	var nodes []TransportNode
	for i := int64(1); i <= 10; i++ {
		nodes = append(nodes, nodeAtOffset(i, CategoryBusStop, "stop", 0.01, 0))
	}

	score, details, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 10, details.BusStops)
	assert.InDelta(t, 2.941, score, 0.01)
}

func TestAccessibilityScoreCapsPerCategory(t *testing.T) {
	// Flood every category; distances near zero so decay barely bites.
	var nodes []TransportNode
	id := int64(1)
	for i := 0; i < 50; i++ {
		nodes = append(nodes, nodeAtOffset(id, CategoryBusStop, "b", 0.001, 0))
		id++
		nodes = append(nodes, nodeAtOffset(id, CategoryTramStop, "t", 0.001, 0))
		id++
		nodes = append(nodes, nodeAtOffset(id, CategoryVeloStation, "v", 0.001, 0))
		id++
	}

	score, details, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	// 3.0 + 4.0 + 3.0 = 10.0, minus a sliver of decay.
	assert.LessOrEqual(t, score, 10.0)
	assert.Greater(t, score, 9.9)
	assert.Equal(t, 50, details.BusStops)
	assert.Equal(t, 50, details.TramStops)
	assert.Equal(t, 50, details.VeloStations)
}

func TestAccessibilityScoreNeverExceedsTen(t *testing.T) {
	radii := []float64{0.1, 0.5, 1.0, 2.5, 5.0}
	for _, radius := range radii {
		var nodes []TransportNode
		for i := int64(1); i <= 300; i++ {
			nodes = append(nodes, nodeAtOffset(i, CategoryTramStop, "t", 0.0001, 0))
		}
		score, _, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, radius)
		require.NoError(t, err)
		assert.LessOrEqual(t, score, 10.0)
		assert.GreaterOrEqual(t, score, 0.0)
	}
}

// Monotonicity: for a fixed category and count, the score must not increase
// as the nearest node moves away.
func TestAccessibilityScoreMonotoneInDistance(t *testing.T) {
	radii := []float64{0.5, 1.0, 5.0}
	for _, radius := range radii {
		previous := math.Inf(1)
		for _, d := range []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.4} {
			nodes := []TransportNode{nodeAtOffset(1, CategoryVeloStation, "v", d*radius, 0)}
			score, _, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, radius)
			require.NoError(t, err)
			assert.LessOrEqual(t, score, previous,
				"score increased as distance grew (radius %.1f, distance %.2f)", radius, d*radius)
			previous = score
		}
	}
}

// Category independence: adding nodes of one category leaves another
// category's contribution untouched, so sub-scores add.
func TestAccessibilityScoreCategoryIndependence(t *testing.T) {
	bus := []TransportNode{nodeAtOffset(1, CategoryBusStop, "b", 0.1, 0)}
	velo := []TransportNode{nodeAtOffset(2, CategoryVeloStation, "v", 0.25, 0)}

	busScore, _, err := AccessibilityScore(bus, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)
	veloScore, _, err := AccessibilityScore(velo, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)
	combined, details, err := AccessibilityScore(append(bus, velo...), antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, busScore+veloScore, combined, 1e-9)
	assert.Equal(t, 1, details.BusStops)
	assert.Equal(t, 1, details.VeloStations)
}

func TestAccessibilityScoreIgnoresInertNodes(t *testing.T) {
	scorable := []TransportNode{nodeAtOffset(1, CategoryBusStop, "b", 0.1, 0)}
	withInert := append(scorable,
		nodeAtOffset(2, CategoryOther, "bench", 0.05, 0),
		nodeAtOffset(3, CategoryUnknown, "", 0.05, 0),
		nodeAtOffset(4, CategoryStopPosition, "", 0.05, 0),
	)

	base, _, err := AccessibilityScore(scorable, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)
	full, details, err := AccessibilityScore(withInert, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.Equal(t, base, full)
	assert.Equal(t, 1, details.BusStops)
	assert.Equal(t, 0, details.TramStops)
	assert.Equal(t, 0, details.VeloStations)
}

// Details always report raw counts and closest distances regardless of how
// the decayed score comes out.
func TestAccessibilityScoreDetailsAreRaw(t *testing.T) {
	var nodes []TransportNode
	for i := int64(1); i <= 20; i++ {
		nodes = append(nodes, nodeAtOffset(i, CategoryBusStop, "b", 0.9, 0))
	}

	_, details, err := AccessibilityScore(nodes, antwerpLat, antwerpLon, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 20, details.BusStops)
	require.NotNil(t, details.ClosestBus)
	assert.InDelta(t, 0.9, *details.ClosestBus, 1e-3)
}
