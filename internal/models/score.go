package models

import (
	"accessibility.antwerp.org/internal/scoring"
	"accessibility.antwerp.org/internal/utils"
)

// NodeModel is the JSON shape of a nearby transport node.
type NodeModel struct {
	ID         int64               `json:"id"`
	Lat        float64             `json:"lat"`
	Lon        float64             `json:"lon"`
	Category   scoring.Category    `json:"category"`
	Name       string              `json:"name,omitempty"`
	DistanceKM float64             `json:"distanceKm"`
	Direction  string              `json:"direction"`
	Routes     []scoring.RouteInfo `json:"routes,omitempty"`
}

// NewNodeModel builds a NodeModel for a node relative to the query point.
func NewNodeModel(nd scoring.NodeDistance, queryLat, queryLon float64) NodeModel {
	return NodeModel{
		ID:         nd.Node.ID,
		Lat:        nd.Node.Lat,
		Lon:        nd.Node.Lon,
		Category:   nd.Node.Category,
		Name:       nd.Node.Name,
		DistanceKM: nd.DistanceKM,
		Direction:  utils.CompassDirection(queryLat, queryLon, nd.Node.Lat, nd.Node.Lon),
		Routes:     nd.Node.Routes,
	}
}

// NewNodeModels converts a nearby set, preserving its order.
func NewNodeModels(nearby []scoring.NodeDistance, queryLat, queryLon float64) []NodeModel {
	nodes := make([]NodeModel, 0, len(nearby))
	for _, nd := range nearby {
		nodes = append(nodes, NewNodeModel(nd, queryLat, queryLon))
	}
	return nodes
}

// ScoreModel is the payload of the score endpoint: the composite score, the
// raw per-category details behind it, the nearby nodes for map display, and
// an optional generated description.
type ScoreModel struct {
	Score       float64         `json:"score"`
	Details     scoring.Details `json:"details"`
	Nodes       []NodeModel     `json:"transportNodes"`
	Description string          `json:"locationDescription,omitempty"`
	RadiusKM    float64         `json:"radiusKm"`
}
