package nodedb

import (
	"context"
	"database/sql"
	"fmt"

	"accessibility.antwerp.org/internal/scoring"
)

// ReplaceNodes atomically swaps the stored node table for the given one.
// Runs in a single transaction so readers never observe a half-loaded table.
func (c *Client) ReplaceNodes(ctx context.Context, nodes []scoring.TransportNode) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes;`); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error clearing nodes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO nodes (node_id, lat, lon, category, name)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, node := range nodes {
		_, err := stmt.ExecContext(ctx, node.ID, node.Lat, node.Lon, string(node.Category), node.Name)
		if err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting node %d: %w", node.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// NodesWithinBounds returns all nodes inside the bounding box, via the R*Tree
// index. The box is a pre-filter: callers still apply an exact distance test.
func (c *Client) NodesWithinBounds(ctx context.Context, bounds scoring.BoundingBox) ([]scoring.TransportNode, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT n.node_id, n.lat, n.lon, n.category, n.name
		FROM nodes n
		JOIN nodes_rtree r ON n.rowid = r.id
		WHERE r.min_lat >= ? AND r.max_lat <= ?
		  AND r.min_lon >= ? AND r.max_lon <= ?;
	`, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("error querying nodes within bounds: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return scanNodes(rows)
}

// GetNode returns a single node by ID, or sql.ErrNoRows when absent.
func (c *Client) GetNode(ctx context.Context, id int64) (scoring.TransportNode, error) {
	var node scoring.TransportNode
	var category string
	var name sql.NullString

	err := c.DB.QueryRowContext(ctx, `
		SELECT node_id, lat, lon, category, name FROM nodes WHERE node_id = ?;
	`, id).Scan(&node.ID, &node.Lat, &node.Lon, &category, &name)
	if err != nil {
		return scoring.TransportNode{}, err
	}

	node.Category = scoring.Category(category)
	node.Name = name.String
	return node, nil
}

// AllScorable returns every node of a scorable category, the feed for
// heatmap-style consumers.
func (c *Client) AllScorable(ctx context.Context) ([]scoring.TransportNode, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT node_id, lat, lon, category, name
		FROM nodes
		WHERE category IN ('bus_stop', 'tram_stop', 'velo_station');
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying scorable nodes: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	return scanNodes(rows)
}

// CountByCategory returns node counts keyed by category.
func (c *Client) CountByCategory(ctx context.Context) (map[scoring.Category]int, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM nodes GROUP BY category;
	`)
	if err != nil {
		return nil, fmt.Errorf("error counting nodes: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	counts := make(map[scoring.Category]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("error scanning count row: %w", err)
		}
		counts[scoring.Category(category)] = count
	}

	return counts, rows.Err()
}

func scanNodes(rows *sql.Rows) ([]scoring.TransportNode, error) {
	var nodes []scoring.TransportNode
	for rows.Next() {
		var node scoring.TransportNode
		var category string
		var name sql.NullString

		if err := rows.Scan(&node.ID, &node.Lat, &node.Lon, &category, &name); err != nil {
			return nil, fmt.Errorf("error scanning node row: %w", err)
		}

		node.Category = scoring.Category(category)
		node.Name = name.String
		nodes = append(nodes, node)
	}

	return nodes, rows.Err()
}
