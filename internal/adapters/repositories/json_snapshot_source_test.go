package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
)

func TestJSONSnapshotSourceLoad(t *testing.T) {
	snap, err := NewJSONSnapshotSource("testdata/fleet.json").LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Trucks, 2)
	assert.Len(t, snap.Routes, 5)
	require.Len(t, snap.Orders, 2, "one stored order plus one intake order")

	assert.Equal(t, 1, len(snap.Trucks[0].CargoLoads))
	assert.InDelta(t, 10, snap.Trucks[0].UsedVolume(), 1e-12)

	savannah := snap.Routes[2]
	assert.True(t, savannah.Contract)
	assert.Len(t, savannah.Path, 3)
	assert.True(t, savannah.Path[0].Marked)

	intake := snap.Orders[1]
	assert.Equal(t, 103, intake.OrderID)
	require.Len(t, intake.Cargo, 1)
	assert.InDelta(t, 4.5, intake.TotalVolume(), 1e-12)
	assert.Equal(t, []domain.CargoType{domain.CargoRefrigerated, domain.CargoStandard}, intake.Cargo[0].Types())
}

func TestJSONSnapshotSourceErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewJSONSnapshotSource(filepath.Join(t.TempDir(), "missing.json")).LoadSnapshot(ctx)
	assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"orders": [`), 0o644))
	_, err = NewJSONSnapshotSource(bad).LoadSnapshot(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSnapshotNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewJSONSnapshotSource("testdata/fleet.json").LoadSnapshot(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeSnapshotRejectsUnknownCargoType(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"intake":[{"id":1,"cargo":{"packages":[[1,1,"explosive"]]}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explosive")
}

func TestValidateSnapshotIDs(t *testing.T) {
	snap, err := NewJSONSnapshotSource("testdata/seed.json").LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, validateSnapshotIDs(snap))

	withIntake, err := NewJSONSnapshotSource("testdata/fleet.json").LoadSnapshot(context.Background())
	require.NoError(t, err)
	err = validateSnapshotIDs(withIntake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 103")
}
