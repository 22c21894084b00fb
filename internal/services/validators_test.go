package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-matching-service/internal/domain"
)

func TestProximityValidator(t *testing.T) {
	v := NewProximityValidator(DefaultConstants())
	route := corridor(1)

	t.Run("endpoints on path", func(t *testing.T) {
		assert.Nil(t, v.Validate(order(1, atlanta, savannah), route))
	})

	t.Run("pickup far away", func(t *testing.T) {
		err := v.Validate(order(2, miami, savannah), route)
		require.NotNil(t, err)
		assert.Equal(t, InvalidProximity, err.Kind)

		d, ok := err.Detail.(ProximityDetail)
		require.True(t, ok)
		assert.Equal(t, "pickup", d.LocationType)
		assert.Greater(t, d.DistanceKm, 1.0)
	})

	t.Run("dropoff far away", func(t *testing.T) {
		err := v.Validate(order(3, atlanta, miami), route)
		require.NotNil(t, err)
		assert.Equal(t, "dropoff", err.Detail.(ProximityDetail).LocationType)
	})

	t.Run("exactly at the limit passes", func(t *testing.T) {
		// Shift the pickup north until it sits exactly MaxProximityKm away.
		step := 180 / (math.Pi * domain.EarthRadiusKm)
		pickup := domain.Location{Lat: atlanta.Lat + step, Lng: atlanta.Lng}
		d := pickup.DistanceTo(atlanta)

		c := DefaultConstants()
		c.MaxProximityKm = d
		assert.Nil(t, NewProximityValidator(c).Validate(order(4, pickup, savannah), route))

		c.MaxProximityKm = d - 1e-9
		assert.NotNil(t, NewProximityValidator(c).Validate(order(4, pickup, savannah), route))
	})

	t.Run("missing locations", func(t *testing.T) {
		o := domain.Order{OrderID: 5, Origin: ptr(atlanta)}
		err := v.Validate(o, route)
		require.NotNil(t, err)
		assert.Equal(t, InvalidProximity, err.Kind)
		assert.Equal(t, "order missing pickup or dropoff location", err.Message)
	})

	t.Run("route without path", func(t *testing.T) {
		err := v.Validate(order(6, atlanta, savannah), domain.Route{RouteID: 9})
		require.NotNil(t, err)
		assert.Equal(t, InvalidProximity, err.Kind)
		assert.Equal(t, "route has no defined path", err.Message)
	})

	t.Run("endpoints used when path is empty", func(t *testing.T) {
		r := domain.Route{Origin: ptr(atlanta), Destiny: ptr(savannah)}
		assert.Nil(t, v.Validate(order(7, savannah, atlanta), r))
	})
}

func TestCapacityValidatorVolume(t *testing.T) {
	v := NewCapacityValidator(DefaultConstants())
	tr := truck(1, 48)

	assert.Empty(t, v.Validate(order(1, atlanta, savannah, pkg(48.0, 100, domain.CargoStandard)), tr))

	errs := v.Validate(order(2, atlanta, savannah, pkg(48.01, 100, domain.CargoStandard)), tr)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidCapacity, errs[0].Kind)

	d := errs[0].Detail.(CapacityDetail)
	assert.InDelta(t, 48.01, d.RequiredM3, 1e-9)
	assert.InDelta(t, 48.0, d.AvailableM3, 1e-9)
}

func TestCapacityValidatorCountsLoadedCargo(t *testing.T) {
	v := NewCapacityValidator(DefaultConstants())
	tr := truck(1, 48)
	tr.CargoLoads = []domain.Cargo{{Packages: []domain.Package{pkg(40, 100, domain.CargoStandard)}}}

	assert.Empty(t, v.Validate(order(1, atlanta, savannah, pkg(8, 1, domain.CargoStandard)), tr))

	errs := v.Validate(order(2, atlanta, savannah, pkg(8.5, 1, domain.CargoStandard)), tr)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidCapacity, errs[0].Kind)
}

func TestCapacityValidatorWeightBoundary(t *testing.T) {
	c := DefaultConstants()
	v := NewCapacityValidator(c)
	tr := truck(1, 48)

	limitKg := c.MaxWeightLbs * c.LbsToKg
	assert.Empty(t, v.Validate(order(1, atlanta, savannah, pkg(1, limitKg, domain.CargoStandard)), tr))

	errs := v.Validate(order(2, atlanta, savannah, pkg(1, limitKg+0.01, domain.CargoStandard)), tr)
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidWeight, errs[0].Kind)
	assert.InDelta(t, 9180.0, errs[0].Detail.(WeightDetail).MaxLbs, 0)
}

// The processor converts with 1/0.453592 and the fleet audit with 2.20462, so
// an order of 9180/2.20462 kg sits exactly on the audit limit but is just over
// the per-order limit.
func TestWeightLimitConversionFactors(t *testing.T) {
	c := DefaultConstants()
	o := order(1, atlanta, savannah, pkg(1, c.MaxWeightLbs/c.AuditKgToLbs, domain.CargoStandard))

	errs := NewCapacityValidator(c).Validate(o, truck(1, 48))
	require.Len(t, errs, 1)
	assert.Equal(t, InvalidWeight, errs[0].Kind)
	assert.InDelta(t, 9180.0184, errs[0].Detail.(WeightDetail).RequiredLbs, 1e-4)

	rep := newAuditor().ValidateCapacity([]domain.Order{o}, []domain.Truck{truck(1, 48)})
	assert.Equal(t, StatusPassed, rep.Status)
}

func TestCapacityValidatorReportsBoth(t *testing.T) {
	v := NewCapacityValidator(DefaultConstants())

	errs := v.Validate(order(1, atlanta, savannah, pkg(60, 6000, domain.CargoStandard)), truck(1, 48))
	require.Len(t, errs, 2)
	assert.Equal(t, InvalidCapacity, errs[0].Kind)
	assert.Equal(t, InvalidWeight, errs[1].Kind)
}

func TestTimeValidator(t *testing.T) {
	c := DefaultConstants()
	v := NewTimeValidator(c)
	o := order(1, atlanta, savannah)

	// Atlanta -> Savannah is roughly 4.45h at 50 mph.
	d := v.ProjectedHours(o, withOrders(corridor(1), 5))
	assert.InDelta(t, 5*c.StopHours(), d.CurrentHours-corridor(1).TotalTime(c.AvgSpeedKmh(), c.StopTimeMinutes), 1e-9)
	assert.InDelta(t, 0.5, d.StopHours, 1e-12)
	assert.InDelta(t, 0, d.DeviationHours, 1e-12)
	assert.Nil(t, v.Validate(o, withOrders(corridor(1), 5)))

	err := v.Validate(o, withOrders(corridor(1), 12))
	require.NotNil(t, err)
	assert.Equal(t, InvalidTime, err.Kind)
	assert.Greater(t, err.Detail.(TimeDetail).TotalHours, 10.0)
}

func TestTimeValidatorDeviation(t *testing.T) {
	c := DefaultConstants()
	v := NewTimeValidator(c)

	d := v.ProjectedHours(order(1, miami, savannah), corridor(1))
	wantKm := 2 * (miami.DistanceTo(savannah) + 0)
	assert.InDelta(t, wantKm/c.AvgSpeedKmh(), d.DeviationHours, 1e-9)
}

func TestCargoCompatibilityValidator(t *testing.T) {
	v := CargoCompatibilityValidator{}
	empty := truck(1, 48)

	cases := []struct {
		name  string
		types []domain.CargoType
		ok    bool
	}{
		{"hazmat with fragile", []domain.CargoType{domain.CargoHazmat, domain.CargoFragile}, false},
		{"hazmat with refrigerated", []domain.CargoType{domain.CargoRefrigerated, domain.CargoHazmat}, false},
		{"hazmat only", []domain.CargoType{domain.CargoHazmat, domain.CargoHazmat}, true},
		{"standard with refrigerated", []domain.CargoType{domain.CargoStandard, domain.CargoRefrigerated}, true},
		{"fragile with refrigerated", []domain.CargoType{domain.CargoFragile, domain.CargoRefrigerated}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var pkgs []domain.Package
			for _, typ := range tc.types {
				pkgs = append(pkgs, pkg(1, 1, typ))
			}
			err := v.Validate(order(1, atlanta, savannah, pkgs...), empty)
			if tc.ok {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, IncompatibleCargo, err.Kind)
			assert.True(t, err.Detail.(CargoDetail).Internal)
		})
	}
}

func TestCargoCompatibilityAgainstLoadedTruck(t *testing.T) {
	v := CargoCompatibilityValidator{}
	tr := truck(1, 48)
	tr.CargoLoads = []domain.Cargo{{CargoID: 9, Packages: []domain.Package{pkg(1, 1, domain.CargoFragile)}}}

	err := v.Validate(order(1, atlanta, savannah, pkg(1, 1, domain.CargoHazmat)), tr)
	require.NotNil(t, err)
	assert.Equal(t, IncompatibleCargo, err.Kind)

	d := err.Detail.(CargoDetail)
	assert.Equal(t, []string{"hazmat"}, d.NewTypes)
	assert.Equal(t, []string{"fragile"}, d.ExistingTypes)
	assert.False(t, d.Internal)

	assert.Nil(t, v.Validate(order(2, atlanta, savannah, pkg(1, 1, domain.CargoStandard)), tr))
	assert.Nil(t, v.Validate(order(3, atlanta, savannah), tr), "orders without cargo always pass")
}
