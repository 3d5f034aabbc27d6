package dataset

import (
	"strings"

	"accessibility.antwerp.org/internal/scoring"
)

// Classify maps a structured OSM tag map to the closed category set used by
// the scorer. Pure function; the precedence mirrors the loading pipeline
// this table is produced by: bike share first, then rail, then bus.
func Classify(tags map[string]string) scoring.Category {
	if len(tags) == 0 {
		return scoring.CategoryUnknown
	}

	if tags["amenity"] == "bicycle_rental" || anyValueContainsVelo(tags) {
		return scoring.CategoryVeloStation
	}

	switch tags["railway"] {
	case "tram_stop", "station", "halt":
		return scoring.CategoryTramStop
	}

	if tags["highway"] == "bus_stop" || strings.Contains(tags["route"], "bus") {
		return scoring.CategoryBusStop
	}

	if tags["public_transport"] == "stop_position" {
		return scoring.CategoryStopPosition
	}

	if _, ok := tags["public_transport"]; ok {
		return scoring.CategoryOther
	}

	return scoring.CategoryUnknown
}

// anyValueContainsVelo catches Antwerp's bike-share stations, which are
// tagged inconsistently but almost always carry "velo" somewhere.
func anyValueContainsVelo(tags map[string]string) bool {
	for _, v := range tags {
		if strings.Contains(strings.ToLower(v), "velo") {
			return true
		}
	}
	return false
}
