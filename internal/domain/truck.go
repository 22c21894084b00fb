package domain

import (
	"fmt"
	"slices"
)

// Truck types that unlock restricted cargo.
const (
	TruckStandard     = "standard"
	TruckHazmat       = "hazmat"
	TruckRefrigerated = "refrigerated"
)

// Truck snapshot with its current loads.
type Truck struct {
	TruckID    int     `json:"id"`
	Capacity   float64 `json:"capacity"` // m³
	Autonomy   float64 `json:"autonomy"` // km
	Type       string  `json:"type"`
	CargoLoads []Cargo `json:"cargo_loads,omitempty"`
}

// UsedVolume is the m³ already taken by loaded cargo.
func (t Truck) UsedVolume() float64 {
	used := 0.0
	for _, c := range t.CargoLoads {
		used += c.TotalVolume()
	}
	return used
}

// UsedWeight is the kg already loaded.
func (t Truck) UsedWeight() float64 {
	used := 0.0
	for _, c := range t.CargoLoads {
		used += c.TotalWeight()
	}
	return used
}

func (t Truck) AvailableVolume() float64 { return t.Capacity - t.UsedVolume() }

func (t Truck) UtilizationPercent() float64 {
	if t.Capacity == 0 {
		return 0
	}
	return t.UsedVolume() / t.Capacity * 100
}

// CanReach reports whether the distance fits the truck's range.
func (t Truck) CanReach(distanceKm float64) bool { return distanceKm <= t.Autonomy }

// CanCarry reports whether the truck type is certified for the cargo:
// refrigerated goods need a refrigerated truck and hazmat needs a hazmat truck.
func (t Truck) CanCarry(c Cargo) bool {
	types := c.Types()
	if slices.Contains(types, CargoRefrigerated) && t.Type != TruckRefrigerated {
		return false
	}
	if slices.Contains(types, CargoHazmat) && t.Type != TruckHazmat {
		return false
	}
	return true
}

// Load returns a copy of the truck carrying the additional cargo.
// It refuses cargo that exceeds the remaining volume; the receiver is never modified.
func (t Truck) Load(c Cargo) (Truck, error) {
	if c.TotalVolume() > t.AvailableVolume() {
		return t, fmt.Errorf(
			"load truck: truck %d lacks volume (need=%.2fm3 available=%.2fm3)",
			t.TruckID, c.TotalVolume(), t.AvailableVolume(),
		)
	}

	truckID := t.TruckID
	c.TruckID = &truckID

	out := t
	out.CargoLoads = append(slices.Clone(t.CargoLoads), c)
	return out, nil
}

// LoadMultiple loads every cargo in order, stopping at the first failure.
func (t Truck) LoadMultiple(cargo []Cargo) (Truck, error) {
	out := t
	for _, c := range cargo {
		next, err := out.Load(c)
		if err != nil {
			return t, err
		}
		out = next
	}
	return out, nil
}
