package services

import (
	"freight-matching-service/internal/domain"
)

// TimeValidator keeps a route within MaxRouteHours once the order's stops and
// detour are added.
type TimeValidator struct {
	c Constants
}

func NewTimeValidator(c Constants) TimeValidator { return TimeValidator{c: c} }

func (TimeValidator) Name() string { return "time" }

func (v TimeValidator) Check(order domain.Order, route domain.Route, _ domain.Truck) []ValidationError {
	return one(v.Validate(order, route))
}

// ProjectedHours returns the route duration after adding the order.
func (v TimeValidator) ProjectedHours(order domain.Order, route domain.Route) TimeDetail {
	speed := v.c.AvgSpeedKmh()
	current := route.TotalTime(speed, v.c.StopTimeMinutes)
	stops := v.c.StopHours()
	deviation := deviationKm(order, route) / speed

	return TimeDetail{
		CurrentHours:   current,
		StopHours:      stops,
		DeviationHours: deviation,
		TotalHours:     current + stops + deviation,
		MaxHours:       v.c.MaxRouteHours,
	}
}

func (v TimeValidator) Validate(order domain.Order, route domain.Route) *ValidationError {
	d := v.ProjectedHours(order, route)
	if d.TotalHours <= v.c.MaxRouteHours {
		return nil
	}

	err := newValidationError(d, "route would exceed maximum time: %.2fh > %.1fh", d.TotalHours, v.c.MaxRouteHours)
	return &err
}
