package services

import (
	"freight-matching-service/internal/domain"
)

// CapacityValidator checks the order against the truck's remaining volume and
// the fixed weight cap. Volume and weight are judged independently.
type CapacityValidator struct {
	c Constants
}

func NewCapacityValidator(c Constants) CapacityValidator { return CapacityValidator{c: c} }

func (CapacityValidator) Name() string { return "capacity" }

func (v CapacityValidator) Check(order domain.Order, _ domain.Route, truck domain.Truck) []ValidationError {
	return v.Validate(order, truck)
}

// Validate returns up to two errors: InvalidCapacity and InvalidWeight.
func (v CapacityValidator) Validate(order domain.Order, truck domain.Truck) []ValidationError {
	var errs []ValidationError

	required := order.TotalVolume()
	available := truck.Capacity - truck.UsedVolume()
	if required > available {
		errs = append(errs, newValidationError(
			CapacityDetail{
				RequiredM3:        required,
				AvailableM3:       available,
				TruckCapacityM3:   truck.Capacity,
				CubicFeetPerCubic: 1 / v.c.CubicFeetToCubicMeters,
			},
			"insufficient volume capacity: need %.1fcf, available %.1fcf",
			v.c.ToCubicFeet(required), v.c.ToCubicFeet(available),
		))
	}

	requiredLbs := v.c.ToPounds(order.TotalWeight())
	availableLbs := v.c.MaxWeightLbs - v.c.ToPounds(truck.UsedWeight())
	if requiredLbs > availableLbs {
		errs = append(errs, newValidationError(
			WeightDetail{RequiredLbs: requiredLbs, AvailableLbs: availableLbs, MaxLbs: v.c.MaxWeightLbs},
			"insufficient weight capacity: need %.1flbs, available %.1flbs", requiredLbs, availableLbs,
		))
	}

	return errs
}
