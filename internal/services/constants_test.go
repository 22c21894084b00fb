package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConstants(t *testing.T) {
	c := DefaultConstants()
	require.NoError(t, c.Validate())

	assert.Equal(t, 1.0, c.MaxProximityKm)
	assert.Equal(t, 15.0, c.StopTimeMinutes)
	assert.Equal(t, 10.0, c.MaxRouteHours)
	assert.Equal(t, 9180.0, c.MaxWeightLbs)
	assert.Equal(t, 48.0, c.MaxTruckVolumeM3)
	assert.Equal(t, 1.693846154, c.TotalCostPerMile)
	assert.Equal(t, 50.0, c.AvgSpeedMph)
	assert.Equal(t, 0.0283168, c.CubicFeetToCubicMeters)
	assert.Equal(t, 0.453592, c.LbsToKg)
	assert.Equal(t, 1.609344, c.MilesToKm)
	assert.Equal(t, 5, c.RequiredContractRoutes)
	assert.Equal(t, 388.15, c.BaselineDailyLoss)

	assert.InDelta(t, c.TotalCostPerMile,
		c.TruckerCostPerMile+c.FuelCostPerMile+c.LeasingCostPerMile+c.MaintenanceCostPerMile+c.InsuranceCostPerMile,
		1e-9)
	assert.InDelta(t, 80.4672, c.AvgSpeedKmh(), 1e-12)
	assert.Equal(t, 9180.0, c.ToPounds(9180*c.LbsToKg))
}

func TestConstantsValidate(t *testing.T) {
	c := DefaultConstants()
	c.AvgSpeedMph = 0
	c.StopTimeMinutes = -1
	c.WarningRatePercent = 120

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avg_speed_mph")
	assert.Contains(t, err.Error(), "stop_time_minutes")
	assert.Contains(t, err.Error(), "warning rate")
}

func TestConstantsTier(t *testing.T) {
	c := DefaultConstants()

	assert.Equal(t, StatusPassed, c.Tier(100))
	assert.Equal(t, StatusWarning, c.Tier(99.9))
	assert.Equal(t, StatusWarning, c.Tier(90))
	assert.Equal(t, StatusFailed, c.Tier(89.99))
}
