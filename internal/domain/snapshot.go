package domain

// FleetSnapshot is the full set of orders, routes and trucks audited together.
type FleetSnapshot struct {
	Orders []Order `json:"orders"`
	Routes []Route `json:"routes"`
	Trucks []Truck `json:"trucks"`
}
