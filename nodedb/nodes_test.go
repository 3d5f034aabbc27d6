package nodedb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessibility.antwerp.org/internal/appconf"
	"accessibility.antwerp.org/internal/scoring"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	return client
}

func testNodes() []scoring.TransportNode {
	return []scoring.TransportNode{
		{ID: 1, Lat: 51.2194, Lon: 4.4025, Category: scoring.CategoryBusStop, Name: "Meir"},
		{ID: 2, Lat: 51.2211, Lon: 4.4013, Category: scoring.CategoryTramStop, Name: "Melkmarkt"},
		{ID: 3, Lat: 51.2300, Lon: 4.4100, Category: scoring.CategoryVeloStation, Name: "Station 42"},
		{ID: 4, Lat: 51.3000, Lon: 4.5000, Category: scoring.CategoryBusStop, Name: "Far away"},
		{ID: 5, Lat: 51.2195, Lon: 4.4030, Category: scoring.CategoryOther, Name: "Fountain"},
	}
}

func TestReplaceNodesAndGetNode(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.ReplaceNodes(ctx, testNodes()))

	node, err := client.GetNode(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Melkmarkt", node.Name)
	assert.Equal(t, scoring.CategoryTramStop, node.Category)
	assert.InDelta(t, 51.2211, node.Lat, 1e-9)

	_, err = client.GetNode(ctx, 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReplaceNodesSwapsTable(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.ReplaceNodes(ctx, testNodes()))
	require.NoError(t, client.ReplaceNodes(ctx, []scoring.TransportNode{
		{ID: 10, Lat: 51.0, Lon: 4.0, Category: scoring.CategoryBusStop, Name: "Only one"},
	}))

	counts, err := client.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[scoring.Category]int{scoring.CategoryBusStop: 1}, counts)

	_, err = client.GetNode(ctx, 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNodesWithinBounds(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ReplaceNodes(ctx, testNodes()))

	bounds := scoring.BoundsForRadius(51.2194, 4.4025, 1.0)
	nodes, err := client.NodesWithinBounds(ctx, bounds)
	require.NoError(t, err)

	ids := map[int64]bool{}
	for _, n := range nodes {
		ids[n.ID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[2])
	assert.True(t, ids[5])
	assert.False(t, ids[4], "node 9 km away must not pass a 1 km bounding box")
}

func TestNodesWithinBoundsEmptyTable(t *testing.T) {
	client := newTestClient(t)

	nodes, err := client.NodesWithinBounds(context.Background(), scoring.BoundsForRadius(51.2, 4.4, 1.0))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestAllScorableExcludesInertCategories(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ReplaceNodes(ctx, testNodes()))

	nodes, err := client.AllScorable(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 4)
	for _, n := range nodes {
		assert.True(t, n.Category.Scorable(), "category %s leaked into scorable set", n.Category)
	}
}

func TestCountByCategory(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ReplaceNodes(ctx, testNodes()))

	counts, err := client.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[scoring.CategoryBusStop])
	assert.Equal(t, 1, counts[scoring.CategoryTramStop])
	assert.Equal(t, 1, counts[scoring.CategoryVeloStation])
	assert.Equal(t, 1, counts[scoring.CategoryOther])
}
