// Package dataset owns the transport node table: loading it from its source,
// classifying raw tags into categories, and serving immutable snapshots to
// concurrent readers. The table is replaced copy-on-write; a reader holding a
// snapshot is never affected by a refresh.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"accessibility.antwerp.org/internal/scoring"
	"accessibility.antwerp.org/nodedb"
)

// ErrNodeNotFound is returned by Node when no transport node has the
// requested ID.
var ErrNodeNotFound = errors.New("transport node not found")

// Config holds the settings for a dataset Manager.
type Config struct {
	// Source is a URL or local path for the cleaned node table CSV.
	Source string
	// RefreshInterval enables periodic reloads when positive and Source is
	// a URL. Local files are never reloaded.
	RefreshInterval time.Duration
	Verbose         bool
}

// Manager loads the node table and owns the current snapshot.
type Manager struct {
	config      Config
	isLocalFile bool
	db          *nodedb.Client
	logger      *slog.Logger

	mu          sync.RWMutex
	snapshot    []scoring.TransportNode
	lastUpdated time.Time

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager loads the node table from config.Source into the given store and
// starts periodic refreshes when configured.
func NewManager(config Config, db *nodedb.Client, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.Source, "http://") && !strings.HasPrefix(config.Source, "https://")

	manager := &Manager{
		config:       config,
		isLocalFile:  isLocalFile,
		db:           db,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}

	if err := manager.Refresh(context.Background()); err != nil {
		return nil, err
	}

	if !isLocalFile && config.RefreshInterval > 0 {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// Refresh reloads the node table from its source and swaps the snapshot.
// Readers holding the old snapshot keep it; the store is replaced in one
// transaction.
func (manager *Manager) Refresh(ctx context.Context) error {
	body, err := rawNodeData(manager.config.Source, manager.isLocalFile)
	if err != nil {
		return err
	}
	defer body.Close() // nolint:errcheck

	nodes, err := loadNodeTable(body)
	if err != nil {
		return err
	}

	if manager.db != nil {
		if err := manager.db.ReplaceNodes(ctx, nodes); err != nil {
			return fmt.Errorf("error storing node table: %w", err)
		}
	}

	manager.mu.Lock()
	manager.snapshot = nodes
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	if manager.config.Verbose {
		manager.logStatistics(nodes)
	}

	return nil
}

// Snapshot returns the current immutable node table. Callers must not mutate
// the returned slice.
func (manager *Manager) Snapshot() []scoring.TransportNode {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.snapshot
}

// IsLoaded reports whether a non-empty node table is available.
func (manager *Manager) IsLoaded() bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.snapshot) > 0
}

// LastUpdated returns when the snapshot was last replaced.
func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

// NodesForLocation is the served flavor of the core's Nearby: a bounding box
// query against the spatial index, then the exact distance test, sorted
// nearest first.
func (manager *Manager) NodesForLocation(ctx context.Context, lat, lon, radiusKM float64) ([]scoring.NodeDistance, error) {
	if radiusKM <= 0 {
		return nil, scoring.ErrInvalidRadius
	}

	var candidates []scoring.TransportNode
	var err error

	if manager.db != nil {
		candidates, err = manager.db.NodesWithinBounds(ctx, scoring.BoundsForRadius(lat, lon, radiusKM))
		if err != nil {
			return nil, err
		}
	} else {
		candidates = manager.Snapshot()
	}

	nearby, err := scoring.Nearby(candidates, lat, lon, radiusKM)
	if err != nil {
		return nil, err
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})

	return nearby, nil
}

// Node looks up a single transport node by its OSM ID.
func (manager *Manager) Node(ctx context.Context, id int64) (scoring.TransportNode, error) {
	if manager.db != nil {
		node, err := manager.db.GetNode(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return scoring.TransportNode{}, ErrNodeNotFound
		}
		return node, err
	}

	for _, node := range manager.Snapshot() {
		if node.ID == id {
			return node, nil
		}
	}
	return scoring.TransportNode{}, ErrNodeNotFound
}

// CategoryCounts returns how many nodes each category has.
func (manager *Manager) CategoryCounts(ctx context.Context) (map[scoring.Category]int, error) {
	if manager.db != nil {
		return manager.db.CountByCategory(ctx)
	}

	counts := make(map[scoring.Category]int)
	for _, node := range manager.Snapshot() {
		counts[node.Category]++
	}
	return counts, nil
}

// NodeCount returns the size of the current snapshot.
func (manager *Manager) NodeCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.snapshot)
}

// Shutdown stops the background refresh goroutine. Safe to call more than
// once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err := manager.Refresh(ctx)
			cancel()
			if err != nil {
				manager.logger.Error("node table refresh failed", "error", err, "source", manager.config.Source)
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down node table refresh")
			return
		}
	}
}

func (manager *Manager) logStatistics(nodes []scoring.TransportNode) {
	counts := make(map[scoring.Category]int)
	for _, node := range nodes {
		counts[node.Category]++
	}

	manager.logger.Info("node table loaded",
		"total", len(nodes),
		"bus_stops", counts[scoring.CategoryBusStop],
		"tram_stops", counts[scoring.CategoryTramStop],
		"velo_stations", counts[scoring.CategoryVeloStation],
		"source", manager.config.Source)
}
