package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyOrderToOrder(t *testing.T) {
	payload := `{
		"id": 42,
		"pick-up": {"latitude": 33.7490, "longitude": -84.3880},
		"drop-off": {"latitude": 32.0835, "longitude": -81.0998},
		"cargo": {"packages": [[1.5, 120, "standard"], [0.5, 20, "fragile"]]}
	}`

	var legacy LegacyOrder
	require.NoError(t, json.Unmarshal([]byte(payload), &legacy))

	order := legacy.ToOrder()
	assert.Equal(t, 42, order.OrderID)
	assert.Equal(t, 2.0, order.TotalVolume())
	assert.Equal(t, 140.0, order.TotalWeight())
	assert.Equal(t, []CargoType{CargoStandard, CargoFragile}, order.Cargo[0].Types())
	assert.InDelta(t, atlanta.DistanceTo(savannah), order.TotalDistance(), 1e-9)
}

func TestLegacyPackageRejectsBadTuple(t *testing.T) {
	var p LegacyPackage
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2, "plutonium"]`), &p))
}
