package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResources is reported when a batch has no route or no truck to match against.
	ErrNoResources = errors.New("no routes or trucks available")
	// ErrUnsupportedPairing is returned for an unknown batch pairing mode.
	ErrUnsupportedPairing = errors.New("unsupported pairing mode")
)

// ErrorKind is the closed set of validation outcomes.
type ErrorKind int

const (
	InvalidProximity ErrorKind = iota + 1
	InvalidCapacity
	InvalidWeight
	InvalidTime
	IncompatibleCargo
)

var kindNames = map[ErrorKind]string{
	InvalidProximity:  "invalid_proximity",
	InvalidCapacity:   "invalid_capacity",
	InvalidWeight:     "invalid_weight",
	InvalidTime:       "invalid_time",
	IncompatibleCargo: "incompatible_cargo",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error_kind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ErrorKind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", string(b))
}

// Detail is the typed payload of a ValidationError. Each variant belongs to exactly one kind.
type Detail interface {
	Kind() ErrorKind
	Fields() map[string]any
	sealed()
}

// ProximityDetail reports how far a pickup or dropoff lies from the route.
type ProximityDetail struct {
	LocationType string // "pickup" or "dropoff"
	DistanceKm   float64
	MaxAllowedKm float64
}

func (ProximityDetail) Kind() ErrorKind { return InvalidProximity }
func (ProximityDetail) sealed()         {}
func (d ProximityDetail) Fields() map[string]any {
	return map[string]any{
		d.LocationType + "_distance_km": d.DistanceKm,
		"max_allowed_km":                d.MaxAllowedKm,
		"location_type":                 d.LocationType,
	}
}

// MissingDataDetail reports input the caller failed to provide.
// It is carried by InvalidProximity errors: missing locations, empty paths,
// empty candidate lists and recovered faults all surface this way.
type MissingDataDetail struct {
	Reason string // missing_locations, empty_route, no_resources, internal_fault
}

func (MissingDataDetail) Kind() ErrorKind { return InvalidProximity }
func (MissingDataDetail) sealed()         {}
func (d MissingDataDetail) Fields() map[string]any {
	return map[string]any{d.Reason: true}
}

// CapacityDetail reports a volume shortfall in both unit systems.
type CapacityDetail struct {
	RequiredM3        float64
	AvailableM3       float64
	TruckCapacityM3   float64
	CubicFeetPerCubic float64
}

func (CapacityDetail) Kind() ErrorKind { return InvalidCapacity }
func (CapacityDetail) sealed()         {}
func (d CapacityDetail) Fields() map[string]any {
	return map[string]any{
		"required_volume_m3":    d.RequiredM3,
		"available_volume_m3":   d.AvailableM3,
		"required_volume_cf":    d.RequiredM3 * d.CubicFeetPerCubic,
		"available_volume_cf":   d.AvailableM3 * d.CubicFeetPerCubic,
		"truck_total_volume_cf": d.TruckCapacityM3 * d.CubicFeetPerCubic,
		"constraint_type":       "volume",
	}
}

// WeightDetail reports a weight shortfall in pounds.
type WeightDetail struct {
	RequiredLbs  float64
	AvailableLbs float64
	MaxLbs       float64
}

func (WeightDetail) Kind() ErrorKind { return InvalidWeight }
func (WeightDetail) sealed()         {}
func (d WeightDetail) Fields() map[string]any {
	return map[string]any{
		"required_weight_lbs":  d.RequiredLbs,
		"available_weight_lbs": d.AvailableLbs,
		"max_weight_lbs":       d.MaxLbs,
		"constraint_type":      "weight",
	}
}

// TimeDetail breaks down the projected route duration.
type TimeDetail struct {
	CurrentHours   float64
	StopHours      float64
	DeviationHours float64
	TotalHours     float64
	MaxHours       float64
}

func (TimeDetail) Kind() ErrorKind { return InvalidTime }
func (TimeDetail) sealed()         {}
func (d TimeDetail) Fields() map[string]any {
	return map[string]any{
		"current_time_hours":         d.CurrentHours,
		"additional_stop_time_hours": d.StopHours,
		"deviation_time_hours":       d.DeviationHours,
		"new_total_time_hours":       d.TotalHours,
		"max_allowed_hours":          d.MaxHours,
	}
}

// CargoDetail names the conflicting type sets. ExistingTypes is empty for an
// internal conflict inside a single shipment.
type CargoDetail struct {
	NewTypes      []string
	ExistingTypes []string
	Internal      bool
}

func (CargoDetail) Kind() ErrorKind { return IncompatibleCargo }
func (CargoDetail) sealed()         {}
func (d CargoDetail) Fields() map[string]any {
	if d.Internal {
		return map[string]any{"cargo_types": d.NewTypes, "internal_conflict": true}
	}
	return map[string]any{
		"new_cargo_types":      d.NewTypes,
		"existing_cargo_types": d.ExistingTypes,
		"conflict_detected":    true,
	}
}

// ValidationError is one failed constraint. It is an expected outcome, not a fault.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	Detail  Detail
}

func newValidationError(d Detail, format string, args ...any) ValidationError {
	return ValidationError{Kind: d.Kind(), Message: fmt.Sprintf(format, args...), Detail: d}
}

func (e ValidationError) Error() string { return e.Kind.String() + ": " + e.Message }

// Details flattens the typed payload for JSON output.
func (e ValidationError) Details() map[string]any {
	if e.Detail == nil {
		return map[string]any{}
	}
	return e.Detail.Fields()
}
