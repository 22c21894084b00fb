package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
)

// snapshotFile is the on-disk snapshot layout. Intake holds orders in the
// shipper submission format and is appended to Orders.
type snapshotFile struct {
	domain.FleetSnapshot
	Intake []domain.LegacyOrder `json:"intake,omitempty"`
}

// JSONSnapshotSource reads a fleet snapshot from a JSON file.
type JSONSnapshotSource struct{ Path string }

func NewJSONSnapshotSource(path string) *JSONSnapshotSource {
	return &JSONSnapshotSource{Path: path}
}

var _ ports.SnapshotRepository = (*JSONSnapshotSource)(nil)

// LoadSnapshot returns the snapshot stored at Path.
func (s *JSONSnapshotSource) LoadSnapshot(ctx context.Context) (domain.FleetSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.FleetSnapshot{}, err
	}

	bytes, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.FleetSnapshot{}, fmt.Errorf("json snapshot: %q: %w", s.Path, ports.ErrSnapshotNotFound)
	}
	if err != nil {
		return domain.FleetSnapshot{}, fmt.Errorf("json snapshot: read %q: %w", s.Path, err)
	}

	snap, err := DecodeSnapshot(bytes)
	if err != nil {
		return domain.FleetSnapshot{}, fmt.Errorf("json snapshot: %q: %w", s.Path, err)
	}
	return snap, nil
}

// DecodeSnapshot parses a snapshot document, converting intake orders.
func DecodeSnapshot(data []byte) (domain.FleetSnapshot, error) {
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.FleetSnapshot{}, fmt.Errorf("parse json: %w", err)
	}

	snap := file.FleetSnapshot
	for _, l := range file.Intake {
		snap.Orders = append(snap.Orders, l.ToOrder())
	}
	return snap, nil
}
