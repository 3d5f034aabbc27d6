package app

import (
	"log/slog"

	"accessibility.antwerp.org/internal/appconf"
	"accessibility.antwerp.org/internal/dataset"
	"accessibility.antwerp.org/internal/describe"
	"accessibility.antwerp.org/internal/geocode"
	"accessibility.antwerp.org/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the transport node dataset, the optional GTFS route
// index, the description generator, the geocoder, and a logger.
type Application struct {
	Config        Config
	Logger        *slog.Logger
	DatasetConfig dataset.Config
	Dataset       *dataset.Manager
	GtfsConfig    gtfs.Config
	GtfsManager   *gtfs.Manager
	Describer     *describe.Generator
	Geocoder      *geocode.Client
}

// Config holds all the configuration settings for our Application. We
// read in these settings from command-line flags when the Application
// starts; secrets fall back to environment variables.
type Config struct {
	Port      int
	Env       appconf.Environment
	ApiKeys   []string
	RateLimit int
}
