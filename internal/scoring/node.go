package scoring

// Category is the closed classification of a transport node. Only the three
// scorable categories ever contribute to a score; everything else is inert
// and passes through untouched.
type Category string

const (
	CategoryBusStop      Category = "bus_stop"
	CategoryTramStop     Category = "tram_stop"
	CategoryVeloStation  Category = "velo_station"
	CategoryStopPosition Category = "stop_position"
	CategoryOther        Category = "other"
	CategoryUnknown      Category = "unknown"
)

// Scorable reports whether nodes of this category contribute to the
// accessibility score.
func (c Category) Scorable() bool {
	switch c {
	case CategoryBusStop, CategoryTramStop, CategoryVeloStation:
		return true
	default:
		return false
	}
}

// RouteInfo describes a scheduled route serving a node. It is attached by the
// GTFS enrichment collaborator and is informational only: the scoring formulas
// never read it.
type RouteInfo struct {
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Type      string `json:"type"`
}

// TransportNode is a point of interest for scoring: a bus stop, tram stop or
// bike-share station drawn from the OSM-derived node table.
type TransportNode struct {
	ID       int64       `json:"id"`
	Lat      float64     `json:"lat"`
	Lon      float64     `json:"lon"`
	Category Category    `json:"category"`
	Name     string      `json:"name,omitempty"`
	Routes   []RouteInfo `json:"routes,omitempty"`
}

// NodeDistance pairs a node with its distance from a query point.
type NodeDistance struct {
	Node       TransportNode `json:"node"`
	DistanceKM float64       `json:"distanceKm"`
}

// Details reports the raw per-category primitives behind a score: counts and
// nearest haversine distances. Closest distances are nil when no node of that
// category lies within the search radius; callers may recompute alternate
// scoring policies from these values.
type Details struct {
	BusStops     int      `json:"busStops"`
	TramStops    int      `json:"tramStops"`
	VeloStations int      `json:"veloStations"`
	ClosestBus   *float64 `json:"closestBus"`
	ClosestTram  *float64 `json:"closestTram"`
	ClosestVelo  *float64 `json:"closestVelo"`
}
