package domain

import (
	"fmt"
	"slices"
	"strings"
)

// CargoType classifies packages for compatibility checks.
type CargoType string

const (
	CargoStandard     CargoType = "standard"
	CargoFragile      CargoType = "fragile"
	CargoHazmat       CargoType = "hazmat"
	CargoRefrigerated CargoType = "refrigerated"
)

// Unordered type pairs that may never share a truck.
var incompatiblePairs = [][2]CargoType{
	{CargoHazmat, CargoFragile},
	{CargoHazmat, CargoRefrigerated},
}

// ParseCargoType maps a case-insensitive name onto a CargoType.
func ParseCargoType(s string) (CargoType, error) {
	switch t := CargoType(strings.ToLower(strings.TrimSpace(s))); t {
	case CargoStandard, CargoFragile, CargoHazmat, CargoRefrigerated:
		return t, nil
	default:
		return "", fmt.Errorf("parse cargo type: unknown type %q", s)
	}
}

// UnmarshalText normalises case and rejects unknown types, so JSON input
// follows the same rules as ParseCargoType.
func (t *CargoType) UnmarshalText(b []byte) error {
	parsed, err := ParseCargoType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// CompatibleTypes reports whether two type sets contain no forbidden pair across them.
func CompatibleTypes(a, b []CargoType) bool {
	for _, pair := range incompatiblePairs {
		if (slices.Contains(a, pair[0]) && slices.Contains(b, pair[1])) ||
			(slices.Contains(a, pair[1]) && slices.Contains(b, pair[0])) {
			return false
		}
	}
	return true
}

// A single physical unit of freight.
type Package struct {
	PackageID int       `json:"id,omitempty"`
	Volume    float64   `json:"volume"` // m³
	Weight    float64   `json:"weight"` // kg
	Type      CargoType `json:"type"`
	CargoID   int       `json:"cargo_id,omitempty"`
}

// Shipment of packages belonging to one order, optionally loaded on a truck.
type Cargo struct {
	CargoID  int       `json:"id,omitempty"`
	OrderID  int       `json:"order_id"`
	TruckID  *int      `json:"truck_id,omitempty"`
	Packages []Package `json:"packages"`
}

func (c Cargo) TotalVolume() float64 {
	total := 0.0
	for _, p := range c.Packages {
		total += p.Volume
	}
	return total
}

func (c Cargo) TotalWeight() float64 {
	total := 0.0
	for _, p := range c.Packages {
		total += p.Weight
	}
	return total
}

// Types returns the distinct package types in first-seen order.
func (c Cargo) Types() []CargoType {
	types := make([]CargoType, 0, len(c.Packages))
	for _, p := range c.Packages {
		if !slices.Contains(types, p.Type) {
			types = append(types, p.Type)
		}
	}
	return types
}

// CompatibleWith reports whether both shipments can travel on the same truck.
func (c Cargo) CompatibleWith(other Cargo) bool {
	return CompatibleTypes(c.Types(), other.Types())
}

// InternallyCompatible reports whether the packages of this shipment may travel together.
func (c Cargo) InternallyCompatible() bool {
	types := c.Types()
	return CompatibleTypes(types, types)
}
