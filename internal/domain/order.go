package domain

// Third-party freight order: pickup, dropoff and the cargo to carry.
type Order struct {
	OrderID  int       `json:"id"`
	Origin   *Location `json:"origin"`
	Destiny  *Location `json:"destiny"`
	Cargo    []Cargo   `json:"cargo"`
	ClientID *int      `json:"client_id,omitempty"`
	RouteID  *int      `json:"route_id,omitempty"`
}

// TotalDistance is the pickup to dropoff great-circle distance in km, 0 when a location is missing.
func (o Order) TotalDistance() float64 {
	if o.Origin == nil || o.Destiny == nil {
		return 0
	}
	return o.Origin.DistanceTo(*o.Destiny)
}

func (o Order) TotalVolume() float64 {
	total := 0.0
	for _, c := range o.Cargo {
		total += c.TotalVolume()
	}
	return total
}

func (o Order) TotalWeight() float64 {
	total := 0.0
	for _, c := range o.Cargo {
		total += c.TotalWeight()
	}
	return total
}

// IsMatched reports whether the order is already assigned to a route.
func (o Order) IsMatched() bool { return o.RouteID != nil }
