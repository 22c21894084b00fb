package services

import (
	"freight-matching-service/internal/domain"
)

// ProximityValidator requires pickup and dropoff to lie within MaxProximityKm of a route vertex.
type ProximityValidator struct {
	c Constants
}

func NewProximityValidator(c Constants) ProximityValidator { return ProximityValidator{c: c} }

func (ProximityValidator) Name() string { return "proximity" }

func (v ProximityValidator) Check(order domain.Order, route domain.Route, _ domain.Truck) []ValidationError {
	return one(v.Validate(order, route))
}

// Validate returns nil when the order is close enough to the route.
func (v ProximityValidator) Validate(order domain.Order, route domain.Route) *ValidationError {
	if order.Origin == nil || order.Destiny == nil {
		err := newValidationError(MissingDataDetail{Reason: "missing_locations"},
			"order missing pickup or dropoff location")
		return &err
	}

	path := route.ResolvedPath()
	if len(path) == 0 {
		err := newValidationError(MissingDataDetail{Reason: "empty_route"}, "route has no defined path")
		return &err
	}

	checks := []struct {
		kind  string
		label string
		loc   domain.Location
	}{
		{"pickup", "Pickup", *order.Origin},
		{"dropoff", "Dropoff", *order.Destiny},
	}

	for _, chk := range checks {
		d := domain.MinDistanceToPath(chk.loc, path)
		if d > v.c.MaxProximityKm {
			err := newValidationError(
				ProximityDetail{LocationType: chk.kind, DistanceKm: d, MaxAllowedKm: v.c.MaxProximityKm},
				"%s location too far from route: %.2fkm > %.1fkm", chk.label, d, v.c.MaxProximityKm,
			)
			return &err
		}
	}

	return nil
}
