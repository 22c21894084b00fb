package domain

import "slices"

// Existing truck route with spare capacity that third-party orders can join.
// Path holds the ordered waypoints; when empty the route is treated as the
// straight origin -> destiny leg.
type Route struct {
	RouteID       int        `json:"id"`
	Name          string     `json:"name,omitempty"`
	Origin        *Location  `json:"origin"`
	Destiny       *Location  `json:"destiny"`
	Path          []Location `json:"path,omitempty"`
	TruckID       *int       `json:"truck_id,omitempty"`
	Profitability float64    `json:"profitability"` // currency per day, may be negative
	Orders        []Order    `json:"orders,omitempty"`
	Contract      bool       `json:"contract,omitempty"`
}

// ResolvedPath returns Path, or the present endpoints when Path is empty.
func (r Route) ResolvedPath() []Location {
	if len(r.Path) > 0 {
		return r.Path
	}

	points := make([]Location, 0, 2)
	if r.Origin != nil {
		points = append(points, *r.Origin)
	}
	if r.Destiny != nil {
		points = append(points, *r.Destiny)
	}
	return points
}

// BaseDistance is the direct origin -> destiny distance in km.
func (r Route) BaseDistance() float64 {
	if r.Origin == nil || r.Destiny == nil {
		return 0
	}
	return r.Origin.DistanceTo(*r.Destiny)
}

// TotalDistance sums the path legs, falling back to BaseDistance for short paths.
func (r Route) TotalDistance() float64 {
	if len(r.Path) < 2 {
		return r.BaseDistance()
	}

	total := 0.0
	for i := 0; i < len(r.Path)-1; i++ {
		total += r.Path[i].DistanceTo(r.Path[i+1])
	}
	return total
}

// TotalTime returns hours on the road: driving at speedKmh plus a pickup and a
// dropoff stop of stopMinutes for every assigned order.
func (r Route) TotalTime(speedKmh float64, stopMinutes float64) float64 {
	drive := 0.0
	if speedKmh > 0 {
		drive = r.TotalDistance() / speedKmh
	}
	return drive + float64(len(r.Orders))*2*stopMinutes/60
}

// Assign returns a copy of the route with the order appended.
// The receiver's order list is left untouched.
func (r Route) Assign(o Order) Route {
	routeID := r.RouteID
	o.RouteID = &routeID

	out := r
	out.Orders = append(slices.Clone(r.Orders), o)
	return out
}
