package nodedb

import (
	"database/sql"
	"fmt"
	"log"

	"accessibility.antwerp.org/internal/appconf"
)

// InitDB creates a new SQLite database with the transport node table and its
// spatial index.
func InitDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		log.Fatal("DB is being created in a file.", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	createNodesTable(tx)

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_nodes_category ON nodes(category);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		log.Fatalf("error creating indexes: %v", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}

// createTable creates a table in the database
func createTable(tx *sql.Tx, tableName string, createStmt string) {
	_, err := tx.Exec(createStmt)
	if err != nil {
		log.Fatalf("Error creating table %s: %v", tableName, err)
	}
}

func createNodesTable(tx *sql.Tx) {
	createTable(tx, "nodes", `
		CREATE TABLE IF NOT EXISTS nodes (
			node_id INTEGER PRIMARY KEY,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			category TEXT NOT NULL,
			name TEXT
		);`,
	)

	// An R*Tree virtual table serves as the spatial index for bounding box
	// queries.
	createTable(tx, "nodes_rtree", `
	CREATE VIRTUAL TABLE IF NOT EXISTS nodes_rtree USING rtree(
		id,               -- Integer primary key for the R*Tree
		min_lat, max_lat, -- Latitude bounds
		min_lon, max_lon  -- Longitude bounds
	);`,
	)

	// Triggers keep the R*Tree in sync with the nodes table.
	createTable(tx, "nodes_rtree_insert_trigger", `
	CREATE TRIGGER IF NOT EXISTS nodes_rtree_insert_trigger
	AFTER INSERT ON nodes
	BEGIN
		INSERT INTO nodes_rtree(id, min_lat, max_lat, min_lon, max_lon)
		VALUES (new.rowid, new.lat, new.lat, new.lon, new.lon);
	END;`,
	)

	createTable(tx, "nodes_rtree_update_trigger", `
	CREATE TRIGGER IF NOT EXISTS nodes_rtree_update_trigger
	AFTER UPDATE ON nodes
	BEGIN
		UPDATE nodes_rtree SET
			min_lat = new.lat,
			max_lat = new.lat,
			min_lon = new.lon,
			max_lon = new.lon
		WHERE id = old.rowid;
	END;`,
	)

	createTable(tx, "nodes_rtree_delete_trigger", `
	CREATE TRIGGER IF NOT EXISTS nodes_rtree_delete_trigger
	AFTER DELETE ON nodes
	BEGIN
		DELETE FROM nodes_rtree WHERE id = old.rowid;
	END;`,
	)
}
