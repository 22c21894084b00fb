package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the fleet snapshot tables in Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTrucksQuery := `
	CREATE TABLE IF NOT EXISTS trucks (
		truck_id INTEGER PRIMARY KEY,
		capacity DOUBLE PRECISION NOT NULL CHECK (capacity >= 0),
		autonomy DOUBLE PRECISION NOT NULL DEFAULT 0,
		truck_type TEXT NOT NULL DEFAULT 'standard'
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		origin_lat DOUBLE PRECISION,
		origin_lng DOUBLE PRECISION,
		destiny_lat DOUBLE PRECISION,
		destiny_lng DOUBLE PRECISION,
		truck_id INTEGER REFERENCES trucks (truck_id),
		profitability DOUBLE PRECISION NOT NULL DEFAULT 0,
		contract BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createRoutePointsQuery := `
	CREATE TABLE IF NOT EXISTS route_points (
		route_id INTEGER NOT NULL REFERENCES routes (route_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		marked BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (route_id, seq)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		client_id INTEGER,
		route_id INTEGER REFERENCES routes (route_id),
		origin_lat DOUBLE PRECISION,
		origin_lng DOUBLE PRECISION,
		destiny_lat DOUBLE PRECISION,
		destiny_lng DOUBLE PRECISION
	);
	`

	createCargoQuery := `
	CREATE TABLE IF NOT EXISTS cargo (
		cargo_id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders (order_id) ON DELETE CASCADE,
		truck_id INTEGER REFERENCES trucks (truck_id)
	);
	`

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		package_id INTEGER PRIMARY KEY,
		cargo_id INTEGER NOT NULL REFERENCES cargo (cargo_id) ON DELETE CASCADE,
		volume DOUBLE PRECISION NOT NULL CHECK (volume > 0),
		weight DOUBLE PRECISION NOT NULL CHECK (weight > 0),
		cargo_type TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_route_id ON orders (route_id);
	`

	statements := []string{
		createTrucksQuery,
		createRoutesQuery,
		createRoutePointsQuery,
		createOrdersQuery,
		createCargoQuery,
		createPackagesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSON loads a snapshot file and stores it in the database.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	snap, err := NewJSONSnapshotSource(jsonPath).LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}

	if err := NewPostgresFleetRepository(db).SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("seed snapshot: %w", err)
	}
	return nil
}
