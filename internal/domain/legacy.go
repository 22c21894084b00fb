package domain

import (
	"encoding/json"
	"fmt"
)

// LegacyPoint is the pick-up/drop-off shape of the older order intake format.
type LegacyPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LegacyPackage decodes the [volume, weight, "type"] tuple form.
type LegacyPackage struct {
	Volume float64
	Weight float64
	Type   CargoType
}

func (p *LegacyPackage) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("legacy package: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("legacy package: want 3 fields, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &p.Volume); err != nil {
		return fmt.Errorf("legacy package: volume: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Weight); err != nil {
		return fmt.Errorf("legacy package: weight: %w", err)
	}

	var name string
	if err := json.Unmarshal(raw[2], &name); err != nil {
		return fmt.Errorf("legacy package: type: %w", err)
	}
	t, err := ParseCargoType(name)
	if err != nil {
		return fmt.Errorf("legacy package: %w", err)
	}
	p.Type = t
	return nil
}

// LegacyOrder is an order as submitted by third-party shippers.
type LegacyOrder struct {
	OrderID int         `json:"id"`
	PickUp  LegacyPoint `json:"pick-up"`
	DropOff LegacyPoint `json:"drop-off"`
	Cargo   struct {
		Packages []LegacyPackage `json:"packages"`
	} `json:"cargo"`
}

// ToOrder converts the intake shape into a single-cargo Order.
func (l LegacyOrder) ToOrder() Order {
	packages := make([]Package, 0, len(l.Cargo.Packages))
	for _, p := range l.Cargo.Packages {
		packages = append(packages, Package{Volume: p.Volume, Weight: p.Weight, Type: p.Type})
	}

	return Order{
		OrderID: l.OrderID,
		Origin:  &Location{Lat: l.PickUp.Latitude, Lng: l.PickUp.Longitude},
		Destiny: &Location{Lat: l.DropOff.Latitude, Lng: l.DropOff.Longitude},
		Cargo:   []Cargo{{OrderID: l.OrderID, Packages: packages}},
	}
}
