package services

import (
	"fmt"
	"slices"
	"strings"

	"freight-matching-service/internal/domain"
)

// AppliedMatch records an order placed on a route and truck.
type AppliedMatch struct {
	OrderID int `json:"order_id"`
	RouteID int `json:"route_id"`
	TruckID int `json:"truck_id"`
}

// SkippedMatch records why a valid match could not be applied.
type SkippedMatch struct {
	OrderID int    `json:"order_id"`
	Reason  string `json:"reason"`
}

// ApplyMatches commits the valid batch results to a copy of the snapshot:
// cargo is loaded on the chosen truck and the order is assigned to the chosen
// route. Orders are applied in snapshot order and each one is validated again
// against the route and truck as left by the earlier ones, so a later order is
// skipped when it no longer fits. The input snapshot is not modified.
func (p *OrderProcessor) ApplyMatches(snap domain.FleetSnapshot, results BatchResult) (domain.FleetSnapshot, []AppliedMatch, []SkippedMatch) {
	out := domain.FleetSnapshot{
		Orders: slices.Clone(snap.Orders),
		Routes: slices.Clone(snap.Routes),
		Trucks: slices.Clone(snap.Trucks),
	}

	var (
		applied []AppliedMatch
		skipped []SkippedMatch
	)

	for i, o := range out.Orders {
		key := o.OrderID
		if key == 0 {
			key = -(i + 1)
		}
		res, ok := results[key]
		if !ok || !res.IsValid {
			continue
		}
		if o.IsMatched() {
			skipped = append(skipped, SkippedMatch{OrderID: o.OrderID, Reason: fmt.Sprintf("already on route %d", *o.RouteID)})
			continue
		}

		ri := slices.IndexFunc(out.Routes, func(r domain.Route) bool { return r.RouteID == res.RouteID })
		ti := slices.IndexFunc(out.Trucks, func(t domain.Truck) bool { return t.TruckID == res.TruckID })
		if ri < 0 || ti < 0 {
			skipped = append(skipped, SkippedMatch{OrderID: o.OrderID, Reason: "route or truck not in snapshot"})
			continue
		}

		if again := p.ValidateOrderForRoute(o, out.Routes[ri], out.Trucks[ti]); !again.IsValid {
			skipped = append(skipped, SkippedMatch{OrderID: o.OrderID, Reason: joinMessages(again.Errors)})
			continue
		}

		loaded, err := out.Trucks[ti].LoadMultiple(o.Cargo)
		if err != nil {
			skipped = append(skipped, SkippedMatch{OrderID: o.OrderID, Reason: err.Error()})
			continue
		}

		out.Trucks[ti] = loaded
		out.Routes[ri] = out.Routes[ri].Assign(o)
		routeID := res.RouteID
		out.Orders[i].RouteID = &routeID

		applied = append(applied, AppliedMatch{OrderID: o.OrderID, RouteID: res.RouteID, TruckID: res.TruckID})
	}

	return out, applied, skipped
}

func joinMessages(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
