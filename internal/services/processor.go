package services

import (
	"encoding/json"
	"fmt"
	"time"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/ports"
)

// ProcessingResult is the outcome of validating one order against one route/truck pair.
type ProcessingResult struct {
	IsValid bool
	Errors  []ValidationError
	Metrics map[string]float64
	// Candidate that produced the result; zero when no candidate existed.
	RouteID int
	TruckID int
}

// Kinds lists the error kinds in the order they were produced.
func (r ProcessingResult) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(r.Errors))
	for i, e := range r.Errors {
		kinds[i] = e.Kind
	}
	return kinds
}

// HasKind reports whether any error has the given kind.
func (r ProcessingResult) HasKind(k ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func (e ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    ErrorKind      `json:"kind"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}{e.Kind, e.Message, e.Details()})
}

func (r ProcessingResult) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = []ValidationError{}
	}
	metrics := r.Metrics
	if metrics == nil {
		metrics = map[string]float64{}
	}
	return json.Marshal(struct {
		IsValid bool               `json:"is_valid"`
		Errors  []ValidationError  `json:"errors"`
		Metrics map[string]float64 `json:"metrics"`
		RouteID int                `json:"route_id,omitempty"`
		TruckID int                `json:"truck_id,omitempty"`
	}{r.IsValid, errs, metrics, r.RouteID, r.TruckID})
}

// OrderProcessor validates orders against route/truck candidates and picks the best match.
// It holds only configuration and is safe for concurrent use.
type OrderProcessor struct {
	constants   Constants
	constraints []Constraint
	pairing     PairingMode
	workers     int
	callTimeout time.Duration
	log         logger.Logger
	recorder    ports.MatchRecorder
}

// ProcessorOption configures an OrderProcessor.
type ProcessorOption func(*OrderProcessor)

// WithLogger sets the processor logger.
func WithLogger(l logger.Logger) ProcessorOption {
	return func(p *OrderProcessor) { p.log = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r ports.MatchRecorder) ProcessorOption {
	return func(p *OrderProcessor) { p.recorder = r }
}

// WithPairing selects how batch candidates are formed.
func WithPairing(m PairingMode) ProcessorOption {
	return func(p *OrderProcessor) { p.pairing = m }
}

// WithWorkers bounds the number of orders evaluated concurrently in a batch.
func WithWorkers(n int) ProcessorOption {
	return func(p *OrderProcessor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithCallTimeout sets a deadline applied to every batch call.
func WithCallTimeout(d time.Duration) ProcessorOption {
	return func(p *OrderProcessor) { p.callTimeout = d }
}

// WithConstraints replaces the default constraint set.
func WithConstraints(cs ...Constraint) ProcessorOption {
	return func(p *OrderProcessor) { p.constraints = cs }
}

func NewOrderProcessor(c Constants, opts ...ProcessorOption) *OrderProcessor {
	p := &OrderProcessor{
		constants:   c,
		constraints: DefaultConstraints(c),
		pairing:     PairingIndexAligned,
		workers:     4,
		log:         logger.NopLogger{},
		recorder:    ports.NopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Constants returns the rule table the processor was built with.
func (p *OrderProcessor) Constants() Constants { return p.constants }

// ValidateOrderForRoute runs every constraint, never stopping at the first
// failure, and always computes the order metrics.
func (p *OrderProcessor) ValidateOrderForRoute(order domain.Order, route domain.Route, truck domain.Truck) (res ProcessingResult) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("validate order %d: recovered fault: %v", order.OrderID, r)
			res = faultResult(fmt.Sprintf("missing data: %v", r))
			res.RouteID, res.TruckID = route.RouteID, truck.TruckID
		}
	}()

	var errs []ValidationError
	for _, c := range p.constraints {
		errs = append(errs, c.Check(order, route, truck)...)
	}

	res = ProcessingResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
		Metrics: p.orderMetrics(order, route, truck),
		RouteID: route.RouteID,
		TruckID: truck.TruckID,
	}

	kinds := make([]string, len(errs))
	for i, e := range errs {
		kinds[i] = e.Kind.String()
	}
	p.recorder.RecordValidation(res.IsValid, kinds)
	p.log.Debugw("order validated", map[string]any{
		"order_id": order.OrderID,
		"route_id": route.RouteID,
		"truck_id": truck.TruckID,
		"valid":    res.IsValid,
		"errors":   kinds,
	})

	return res
}

func (p *OrderProcessor) orderMetrics(order domain.Order, route domain.Route, truck domain.Truck) map[string]float64 {
	c := p.constants

	volumeM3 := order.TotalVolume()
	volumeCf := c.ToCubicFeet(volumeM3)
	weightKg := order.TotalWeight()
	weightLbs := c.ToPounds(weightKg)
	distanceKm := order.TotalDistance()

	volumeUtil := 0.0
	if truckCf := c.ToCubicFeet(truck.Capacity); truckCf > 0 {
		volumeUtil = volumeCf / truckCf * 100
	}
	weightUtil := weightLbs / c.MaxWeightLbs * 100

	deviationMiles := c.ToMiles(deviationKm(order, route))

	typeOK := 1.0
	for _, cg := range order.Cargo {
		if !truck.CanCarry(cg) {
			typeOK = 0
			break
		}
	}

	return map[string]float64{
		"order_volume_m3":            volumeM3,
		"order_volume_cf":            volumeCf,
		"order_weight_kg":            weightKg,
		"order_weight_lbs":           weightLbs,
		"order_distance_km":          distanceKm,
		"order_distance_miles":       c.ToMiles(distanceKm),
		"volume_utilization_percent": volumeUtil,
		"weight_utilization_percent": weightUtil,
		"deviation_distance_miles":   deviationMiles,
		"additional_cost_usd":        deviationMiles * c.TotalCostPerMile,
		"truck_type_compatible":      typeOK,
	}
}

func faultResult(msg string) ProcessingResult {
	return ProcessingResult{
		IsValid: false,
		Errors:  []ValidationError{newValidationError(MissingDataDetail{Reason: "internal_fault"}, "%s", msg)},
		Metrics: map[string]float64{},
	}
}
