package services

import (
	"freight-matching-service/internal/domain"
)

// CargoCompatibilityValidator forbids hazmat next to fragile or refrigerated goods,
// both inside the new order and against cargo already on the truck.
type CargoCompatibilityValidator struct{}

func (CargoCompatibilityValidator) Name() string { return "cargo_compatibility" }

func (v CargoCompatibilityValidator) Check(order domain.Order, _ domain.Route, truck domain.Truck) []ValidationError {
	return one(v.Validate(order, truck))
}

// Validate reports the first conflict found.
func (CargoCompatibilityValidator) Validate(order domain.Order, truck domain.Truck) *ValidationError {
	if len(order.Cargo) == 0 {
		return nil
	}

	for _, c := range order.Cargo {
		if !c.InternallyCompatible() {
			types := typeNames(c)
			err := newValidationError(
				CargoDetail{NewTypes: types, Internal: true},
				"incompatible cargo types within single shipment: %v", types,
			)
			return &err
		}
	}

	for _, incoming := range order.Cargo {
		for _, loaded := range truck.CargoLoads {
			if incoming.CompatibleWith(loaded) {
				continue
			}
			newTypes, existing := typeNames(incoming), typeNames(loaded)
			err := newValidationError(
				CargoDetail{NewTypes: newTypes, ExistingTypes: existing},
				"incompatible cargo types: %v conflicts with existing %v", newTypes, existing,
			)
			return &err
		}
	}

	return nil
}

func typeNames(c domain.Cargo) []string {
	types := c.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
