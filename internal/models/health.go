package models

// HealthModel reports the readiness of the service's collaborators.
type HealthModel struct {
	Status         string         `json:"status"`
	DatasetLoaded  bool           `json:"datasetLoaded"`
	NodeCount      int            `json:"nodeCount"`
	CategoryCounts map[string]int `json:"categoryCounts,omitempty"`
	GTFSEnabled    bool           `json:"gtfsEnabled"`
	GTFSStopCount  int            `json:"gtfsStopCount,omitempty"`
}

// IsochroneModel is the cosmetic fixed-radius circle around a query point,
// as an encoded polyline. It is a drawing aid, not a travel-time isochrone.
type IsochroneModel struct {
	Polyline string  `json:"polyline"`
	RadiusKM float64 `json:"radiusKm"`
}

// GeocodeModel is a forward-geocoding hit.
type GeocodeModel struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}
