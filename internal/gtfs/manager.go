// Package gtfs enriches transport nodes with the scheduled routes that serve
// them, from a static GTFS feed. Enrichment is informational only; the
// scoring formulas never read it.
package gtfs

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jamespfennell/gtfs"

	"accessibility.antwerp.org/internal/scoring"
)

// stopRoutes is one GTFS stop with the routes calling at it.
type stopRoutes struct {
	lat, lon float64
	routes   []scoring.RouteInfo
}

// Manager owns the parsed feed and the stop-to-routes index built from it.
type Manager struct {
	gtfsSource  string
	isLocalFile bool
	config      Config
	logger      *slog.Logger

	mu          sync.RWMutex
	index       []stopRoutes
	lastUpdated time.Time

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager loads the GTFS feed from the given source and builds the route
// index. The source can be either a URL or a local file path.
func InitManager(config Config, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.GtfsURL, "http://") && !strings.HasPrefix(config.GtfsURL, "https://")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	staticData, err := loadGTFSData(ctx, config.GtfsURL, isLocalFile)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		gtfsSource:   config.GtfsURL,
		isLocalFile:  isLocalFile,
		config:       config,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
	manager.setIndex(buildIndex(staticData))

	if !isLocalFile && config.RefreshInterval > 0 {
		manager.wg.Add(1)
		go manager.updatePeriodically()
	}

	return manager, nil
}

// Shutdown stops the background refresh goroutine. Safe to call repeatedly.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}

// LastUpdated returns when the route index was last rebuilt.
func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

// StopCount returns the number of indexed GTFS stops.
func (manager *Manager) StopCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.index)
}

// RoutesNear returns the scheduled routes serving any GTFS stop within the
// match radius of the point, deduplicated and sorted by short name.
func (manager *Manager) RoutesNear(lat, lon float64) []scoring.RouteInfo {
	manager.mu.RLock()
	index := manager.index
	manager.mu.RUnlock()

	radius := manager.config.matchRadiusKM()
	bounds := scoring.BoundsForRadius(lat, lon, radius)

	seen := map[string]bool{}
	var routes []scoring.RouteInfo
	for i := range index {
		entry := &index[i]
		if !bounds.Contains(entry.lat, entry.lon) {
			continue
		}
		if scoring.Haversine(lat, lon, entry.lat, entry.lon) > radius {
			continue
		}
		for _, route := range entry.routes {
			key := route.Type + "\x00" + route.ShortName
			if seen[key] {
				continue
			}
			seen[key] = true
			routes = append(routes, route)
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].ShortName != routes[j].ShortName {
			return routes[i].ShortName < routes[j].ShortName
		}
		return routes[i].Type < routes[j].Type
	})

	return routes
}

// EnrichNodes returns a copy of the node slice with Routes attached. The
// input is never mutated; nodes with no scheduled service nearby come back
// unchanged.
func (manager *Manager) EnrichNodes(nodes []scoring.NodeDistance) []scoring.NodeDistance {
	enriched := make([]scoring.NodeDistance, len(nodes))
	copy(enriched, nodes)
	for i := range enriched {
		enriched[i].Node.Routes = manager.RoutesNear(enriched[i].Node.Lat, enriched[i].Node.Lon)
	}
	return enriched
}

func (manager *Manager) setIndex(index []stopRoutes) {
	manager.mu.Lock()
	manager.index = index
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	if manager.config.Verbose {
		manager.logger.Info("GTFS route index updated",
			"stops", len(index), "source", manager.gtfsSource)
	}
}

// buildIndex walks the feed's scheduled trips and collects, per stop, the
// distinct routes calling there.
func buildIndex(staticData *gtfs.Static) []stopRoutes {
	type stopAccum struct {
		lat, lon float64
		routes   map[string]scoring.RouteInfo
	}
	byStop := map[string]*stopAccum{}

	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil {
			continue
		}
		info := scoring.RouteInfo{
			ShortName: trip.Route.ShortName,
			LongName:  trip.Route.LongName,
			Type:      displayType(int(trip.Route.Type)),
		}

		for j := range trip.StopTimes {
			stop := trip.StopTimes[j].Stop
			if stop == nil || stop.Latitude == nil || stop.Longitude == nil {
				continue
			}
			accum, ok := byStop[stop.Id]
			if !ok {
				accum = &stopAccum{
					lat:    *stop.Latitude,
					lon:    *stop.Longitude,
					routes: map[string]scoring.RouteInfo{},
				}
				byStop[stop.Id] = accum
			}
			accum.routes[info.Type+"\x00"+info.ShortName] = info
		}
	}

	index := make([]stopRoutes, 0, len(byStop))
	for _, accum := range byStop {
		entry := stopRoutes{lat: accum.lat, lon: accum.lon}
		for _, route := range accum.routes {
			entry.routes = append(entry.routes, route)
		}
		index = append(index, entry)
	}
	return index
}

// updatePeriodically refreshes the feed on the configured schedule. Only
// URL sources are refreshed; a failed fetch keeps the previous index.
func (manager *Manager) updatePeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			staticData, err := loadGTFSData(ctx, manager.gtfsSource, false)
			cancel()

			if err != nil {
				manager.logger.Error("GTFS feed refresh failed", "error", err, "source", manager.gtfsSource)
				continue
			}
			manager.setIndex(buildIndex(staticData))
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down GTFS feed refresh")
			return
		}
	}
}
