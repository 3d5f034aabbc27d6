package gtfs

import "time"

// Config holds the settings for the scheduled-route enrichment manager.
type Config struct {
	// GtfsURL is a URL or local path for a static GTFS zip (De Lijn's feed
	// in production).
	GtfsURL string
	// MatchRadiusKM bounds how far a GTFS stop may sit from a transport
	// node and still lend it its routes. Defaults to 0.1 km.
	MatchRadiusKM float64
	// RefreshInterval enables periodic feed reloads when positive and the
	// source is a URL.
	RefreshInterval time.Duration
	Verbose         bool
}

func (config Config) matchRadiusKM() float64 {
	if config.MatchRadiusKM > 0 {
		return config.MatchRadiusKM
	}
	return 0.1
}
