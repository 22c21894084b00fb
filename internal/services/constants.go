package services

import (
	"errors"
	"fmt"
)

// Constants is the immutable rule table shared by every validator.
// Values come from the freight matching business document and are bit-exact.
type Constants struct {
	MaxProximityKm   float64
	StopTimeMinutes  float64
	MaxRouteHours    float64
	MaxWeightLbs     float64
	MaxTruckVolumeM3 float64

	TotalCostPerMile       float64
	TruckerCostPerMile     float64
	FuelCostPerMile        float64
	LeasingCostPerMile     float64
	MaintenanceCostPerMile float64
	InsuranceCostPerMile   float64

	AvgSpeedMph float64

	CubicFeetToCubicMeters float64 // m³ per ft³
	LbsToKg                float64 // kg per lb
	MilesToKm              float64 // km per mile
	AuditKgToLbs           float64 // lbs per kg used by the fleet audit

	RequiredContractRoutes int
	BaselineDailyLoss      float64

	// Tier cut-offs for rate based audit checks, in percent.
	PassRatePercent    float64
	WarningRatePercent float64
}

// DefaultConstants returns the reference rule table.
func DefaultConstants() Constants {
	return Constants{
		MaxProximityKm:   1.0,
		StopTimeMinutes:  15,
		MaxRouteHours:    10.0,
		MaxWeightLbs:     9180,
		MaxTruckVolumeM3: 48.0,

		TotalCostPerMile:       1.693846154,
		TruckerCostPerMile:     0.78,
		FuelCostPerMile:        0.373846153846154,
		LeasingCostPerMile:     0.27,
		MaintenanceCostPerMile: 0.17,
		InsuranceCostPerMile:   0.1,

		AvgSpeedMph: 50,

		CubicFeetToCubicMeters: 0.0283168,
		LbsToKg:                0.453592,
		MilesToKm:              1.609344,
		AuditKgToLbs:           2.20462,

		RequiredContractRoutes: 5,
		BaselineDailyLoss:      388.15,

		PassRatePercent:    100,
		WarningRatePercent: 90,
	}
}

// ContractDestinations are the five contract route destinations.
var ContractDestinations = []string{"Ringgold", "Augusta", "Savannah", "Albany", "Columbus"}

func (c Constants) AvgSpeedKmh() float64 { return c.AvgSpeedMph * c.MilesToKm }

func (c Constants) ToCubicFeet(m3 float64) float64 { return m3 / c.CubicFeetToCubicMeters }

func (c Constants) ToPounds(kg float64) float64 { return kg / c.LbsToKg }

func (c Constants) ToMiles(km float64) float64 { return km / c.MilesToKm }

// StopHours is the time spent on one pickup plus one dropoff.
func (c Constants) StopHours() float64 { return 2 * c.StopTimeMinutes / 60 }

// Tier maps a compliance rate onto the shared pass/warning/fail ladder.
func (c Constants) Tier(ratePercent float64) Status {
	switch {
	case ratePercent >= c.PassRatePercent:
		return StatusPassed
	case ratePercent >= c.WarningRatePercent:
		return StatusWarning
	default:
		return StatusFailed
	}
}

// Validate rejects tables that would make the validators divide by zero or never pass.
func (c Constants) Validate() error {
	var errs []error
	positive := map[string]float64{
		"max_proximity_km":          c.MaxProximityKm,
		"max_route_hours":           c.MaxRouteHours,
		"max_weight_lbs":            c.MaxWeightLbs,
		"max_truck_volume_m3":       c.MaxTruckVolumeM3,
		"avg_speed_mph":             c.AvgSpeedMph,
		"cubic_feet_to_cubic_meter": c.CubicFeetToCubicMeters,
		"lbs_to_kg":                 c.LbsToKg,
		"miles_to_km":               c.MilesToKm,
		"audit_kg_to_lbs":           c.AuditKgToLbs,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("constants: %s must be positive, got %v", name, v))
		}
	}
	if c.StopTimeMinutes < 0 {
		errs = append(errs, fmt.Errorf("constants: stop_time_minutes must not be negative, got %v", c.StopTimeMinutes))
	}
	if c.WarningRatePercent > c.PassRatePercent {
		errs = append(errs, fmt.Errorf("constants: warning rate %v above pass rate %v", c.WarningRatePercent, c.PassRatePercent))
	}
	return errors.Join(errs...)
}
