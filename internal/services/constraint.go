package services

import (
	"freight-matching-service/internal/domain"
)

// Constraint is one independent check of an (order, route, truck) candidate.
// Implementations never modify their inputs.
type Constraint interface {
	Name() string
	Check(order domain.Order, route domain.Route, truck domain.Truck) []ValidationError
}

// DefaultConstraints returns the four matching constraints in evaluation order.
func DefaultConstraints(c Constants) []Constraint {
	return []Constraint{
		ProximityValidator{c: c},
		CapacityValidator{c: c},
		TimeValidator{c: c},
		CargoCompatibilityValidator{},
	}
}

// deviationKm approximates the detour needed to serve the order as a round trip
// from the closest path vertex to pickup and to dropoff.
func deviationKm(order domain.Order, route domain.Route) float64 {
	path := route.ResolvedPath()
	if len(path) == 0 {
		return 0
	}

	total := 0.0
	if order.Origin != nil {
		total += domain.MinDistanceToPath(*order.Origin, path)
	}
	if order.Destiny != nil {
		total += domain.MinDistanceToPath(*order.Destiny, path)
	}
	return 2 * total
}

func one(err *ValidationError) []ValidationError {
	if err == nil {
		return nil
	}
	return []ValidationError{*err}
}
