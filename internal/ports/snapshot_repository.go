package ports

import (
	"context"
	"errors"

	"freight-matching-service/internal/domain"
)

// ErrSnapshotNotFound is returned when a source holds no fleet data.
var ErrSnapshotNotFound = errors.New("fleet snapshot not found")

// Port: a boundary for loading the orders, routes and trucks audited together.
type SnapshotRepository interface {
	// Load a consistent, read-only snapshot of the fleet.
	LoadSnapshot(ctx context.Context) (domain.FleetSnapshot, error)
}
