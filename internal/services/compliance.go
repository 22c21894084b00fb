package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/ports"
)

// Status is the outcome of one audited requirement.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// Requirement ids from the business requirements document.
const (
	RequirementProfitability = "1.1"
	RequirementProximity     = "1.2"
	RequirementCapacity      = "1.3"
	RequirementTime          = "1.4"
	RequirementContract      = "1.5"
)

// ValidationReport is the audit result for one requirement.
type ValidationReport struct {
	RequirementID   string             `json:"requirement_id"`
	Description     string             `json:"requirement_description"`
	Status          Status             `json:"status"`
	Details         string             `json:"details"`
	Metrics         map[string]float64 `json:"metrics"`
	Inputs          map[string]float64 `json:"test_data_used,omitempty"`
	Recommendations []string           `json:"recommendations"`
	Timestamp       time.Time          `json:"timestamp"`
}

// FleetComplianceValidator audits a whole fleet snapshot against the business requirements.
type FleetComplianceValidator struct {
	c        Constants
	log      logger.Logger
	recorder ports.MatchRecorder
	now      func() time.Time
}

// ComplianceOption configures a FleetComplianceValidator.
type ComplianceOption func(*FleetComplianceValidator)

func WithComplianceLogger(l logger.Logger) ComplianceOption {
	return func(v *FleetComplianceValidator) { v.log = l }
}

func WithComplianceRecorder(r ports.MatchRecorder) ComplianceOption {
	return func(v *FleetComplianceValidator) { v.recorder = r }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) ComplianceOption {
	return func(v *FleetComplianceValidator) { v.now = now }
}

func NewFleetComplianceValidator(c Constants, opts ...ComplianceOption) *FleetComplianceValidator {
	v := &FleetComplianceValidator{
		c:        c,
		log:      logger.NopLogger{},
		recorder: ports.NopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// guard turns a fault inside a check into a Failed report.
func (v *FleetComplianceValidator) guard(id, description, topic string, check func(ts time.Time) ValidationReport) (rep ValidationReport) {
	ts := v.now()
	defer func() {
		if r := recover(); r != nil {
			v.log.Errorf("requirement %s: recovered fault: %v", id, r)
			rep = ValidationReport{
				RequirementID:   id,
				Description:     description,
				Status:          StatusFailed,
				Details:         fmt.Sprintf("Validation failed due to error: %v", r),
				Metrics:         map[string]float64{},
				Recommendations: []string{"Fix system errors before " + topic + " validation"},
				Timestamp:       ts,
			}
		}
		v.recorder.RecordCompliance(rep.RequirementID, string(rep.Status))
	}()

	rep = check(ts)
	rep.RequirementID = id
	rep.Description = description
	rep.Timestamp = ts
	if rep.Recommendations == nil {
		rep.Recommendations = []string{}
	}
	return rep
}

// ValidateProfitability checks that the fleet turned the baseline daily loss into profit.
func (v *FleetComplianceValidator) ValidateProfitability(routes []domain.Route, baselineDailyLoss float64) ValidationReport {
	desc := fmt.Sprintf("Convert $%.2f daily loss into measurable profit", baselineDailyLoss)
	return v.guard(RequirementProfitability, desc, "profitability", func(time.Time) ValidationReport {
		current := 0.0
		for _, r := range routes {
			current += r.Profitability
		}

		improvement := current - (-baselineDailyLoss)
		improvementPct := 0.0
		if baselineDailyLoss > 0 {
			improvementPct = improvement / baselineDailyLoss * 100
		}

		var rep ValidationReport
		switch {
		case current > 0:
			rep.Status = StatusPassed
			rep.Details = fmt.Sprintf("System converted $%.2f daily loss into $%.2f daily profit", baselineDailyLoss, current)
		case improvement > 0:
			rep.Status = StatusWarning
			rep.Details = fmt.Sprintf("System reduced daily loss by $%.2f but has not achieved profitability yet", improvement)
		case current == 0 && baselineDailyLoss > 0:
			rep.Status = StatusWarning
			rep.Details = fmt.Sprintf("System eliminated $%.2f daily loss, achieving break-even", baselineDailyLoss)
		default:
			rep.Status = StatusFailed
			rep.Details = fmt.Sprintf("System has not improved profitability. Current daily result: $%.2f", current)
		}

		rep.Metrics = map[string]float64{
			"baseline_daily_loss":    baselineDailyLoss,
			"current_daily_profit":   current,
			"improvement_amount":     improvement,
			"improvement_percentage": improvementPct,
			"routes_analyzed":        float64(len(routes)),
		}
		rep.Inputs = map[string]float64{"routes_count": float64(len(routes)), "baseline_loss": baselineDailyLoss}
		if rep.Status != StatusPassed {
			rep.Recommendations = []string{
				"Analyze routes with negative profitability for optimization opportunities",
				"Consider adjusting pricing strategy for additional cargo",
				"Review capacity utilization to maximize revenue per route",
			}
		}
		return rep
	})
}

// ValidateProximity checks every order against the closest vertex of any route.
func (v *FleetComplianceValidator) ValidateProximity(orders []domain.Order, routes []domain.Route) ValidationReport {
	desc := fmt.Sprintf("Enforce %.0fkm proximity constraint for pickup and dropoff", v.c.MaxProximityKm)
	return v.guard(RequirementProximity, desc, "proximity", func(time.Time) ValidationReport {
		var violations []string
		compliant := 0

		for _, o := range orders {
			if o.Origin == nil || o.Destiny == nil {
				violations = append(violations, fmt.Sprintf("Order %d: missing pickup or dropoff location", o.OrderID))
				continue
			}

			pickup, dropoff := math.Inf(1), math.Inf(1)
			for _, r := range routes {
				path := r.ResolvedPath()
				if len(path) == 0 {
					continue
				}
				pickup = math.Min(pickup, domain.MinDistanceToPath(*o.Origin, path))
				dropoff = math.Min(dropoff, domain.MinDistanceToPath(*o.Destiny, path))
			}

			if pickup <= v.c.MaxProximityKm && dropoff <= v.c.MaxProximityKm {
				compliant++
				continue
			}
			violations = append(violations, fmt.Sprintf(
				"Order %d: pickup %.2fkm, dropoff %.2fkm from closest route", o.OrderID, pickup, dropoff))
		}

		total := len(orders)
		rate := 100.0
		if total > 0 {
			rate = float64(compliant) / float64(total) * 100
		}

		var rep ValidationReport
		rep.Status = v.c.Tier(rate)
		switch {
		case total == 0:
			rep.Details = "No orders to validate - proximity constraint compliance confirmed"
		case rep.Status == StatusPassed:
			rep.Details = fmt.Sprintf("All %d orders comply with %.0fkm proximity constraint", total, v.c.MaxProximityKm)
		case rep.Status == StatusWarning:
			rep.Details = fmt.Sprintf("%.1f%% of orders comply with proximity constraint", rate)
		default:
			rep.Details = fmt.Sprintf("Only %.1f%% of orders comply with proximity constraint", rate)
		}
		v.logViolations(RequirementProximity, violations)

		rep.Metrics = map[string]float64{
			"total_orders":            float64(total),
			"compliant_orders":        float64(compliant),
			"compliance_rate_percent": rate,
			"violations_count":        float64(len(violations)),
			"max_proximity_km":        v.c.MaxProximityKm,
		}
		rep.Inputs = map[string]float64{"orders_tested": float64(total), "routes_available": float64(len(routes))}
		if len(violations) > 0 {
			rep.Recommendations = []string{
				"Review order matching algorithm for proximity validation",
				"Consider rejecting orders that exceed proximity limits",
				"Implement real-time proximity checking during order intake",
			}
		}
		return rep
	})
}

// ValidateCapacity checks trucks and orders against the hard volume and weight limits.
func (v *FleetComplianceValidator) ValidateCapacity(orders []domain.Order, trucks []domain.Truck) ValidationReport {
	desc := fmt.Sprintf("Respect %.0fm³ capacity and %.0f lbs weight limits", v.c.MaxTruckVolumeM3, v.c.MaxWeightLbs)
	return v.guard(RequirementCapacity, desc, "capacity", func(time.Time) ValidationReport {
		var violations []string
		compliantTrucks := 0

		for _, t := range trucks {
			if t.Capacity > v.c.MaxTruckVolumeM3 {
				violations = append(violations, fmt.Sprintf(
					"Truck %d: volume capacity %.2fm³ exceeds limit %.0fm³", t.TruckID, t.Capacity, v.c.MaxTruckVolumeM3))
			}

			volume := t.UsedVolume()
			weightLbs := t.UsedWeight() * v.c.AuditKgToLbs
			volumeOK := volume <= v.c.MaxTruckVolumeM3
			weightOK := weightLbs <= v.c.MaxWeightLbs

			if volumeOK && weightOK {
				compliantTrucks++
				continue
			}
			if !volumeOK {
				violations = append(violations, fmt.Sprintf(
					"Truck %d: volume %.2fm³ exceeds limit %.0fm³", t.TruckID, volume, v.c.MaxTruckVolumeM3))
			}
			if !weightOK {
				violations = append(violations, fmt.Sprintf(
					"Truck %d: weight %.2flbs exceeds limit %.0flbs", t.TruckID, weightLbs, v.c.MaxWeightLbs))
			}
		}

		for _, o := range orders {
			if volume := o.TotalVolume(); volume > v.c.MaxTruckVolumeM3 {
				violations = append(violations, fmt.Sprintf(
					"Order %d: volume %.2fm³ exceeds truck capacity", o.OrderID, volume))
			}
			if weightLbs := o.TotalWeight() * v.c.AuditKgToLbs; weightLbs > v.c.MaxWeightLbs {
				violations = append(violations, fmt.Sprintf(
					"Order %d: weight %.2flbs exceeds truck capacity", o.OrderID, weightLbs))
			}
		}

		rate := 100.0
		if len(trucks) > 0 {
			rate = float64(compliantTrucks) / float64(len(trucks)) * 100
		}

		var rep ValidationReport
		if len(violations) == 0 {
			rep.Status = StatusPassed
			rep.Details = fmt.Sprintf("All capacity constraints respected. %.1f%% compliance rate", rate)
		} else {
			rep.Status = StatusFailed
			rep.Details = fmt.Sprintf("Capacity violations detected: %d violations found", len(violations))
			rep.Recommendations = []string{
				"Implement pre-assignment capacity validation",
				"Add real-time capacity monitoring during order processing",
				"Consider load balancing across multiple trucks for large orders",
			}
		}
		v.logViolations(RequirementCapacity, violations)

		rep.Metrics = map[string]float64{
			"max_volume_m3":           v.c.MaxTruckVolumeM3,
			"max_weight_lbs":          v.c.MaxWeightLbs,
			"trucks_analyzed":         float64(len(trucks)),
			"orders_analyzed":         float64(len(orders)),
			"violations_count":        float64(len(violations)),
			"compliance_rate_percent": rate,
		}
		rep.Inputs = map[string]float64{"trucks_count": float64(len(trucks)), "orders_count": float64(len(orders))}
		return rep
	})
}

// ValidateTime checks that every route stays within the maximum route duration
// once pickup and dropoff stops for its orders are added.
func (v *FleetComplianceValidator) ValidateTime(routes []domain.Route) ValidationReport {
	desc := fmt.Sprintf("Maintain %.0f-hour maximum route time with %.0f-minute stops", v.c.MaxRouteHours, v.c.StopTimeMinutes)
	return v.guard(RequirementTime, desc, "time", func(time.Time) ValidationReport {
		var violations []string
		compliant := 0
		speed := v.c.AvgSpeedKmh()

		for _, r := range routes {
			base := r.TotalTime(speed, v.c.StopTimeMinutes)
			stops := float64(len(r.Orders)) * v.c.StopHours()
			total := base + stops

			if total <= v.c.MaxRouteHours {
				compliant++
				continue
			}
			violations = append(violations, fmt.Sprintf(
				"Route %d: total time %.2fh exceeds limit %.0fh (drive: %.2fh, stops: %.2fh)",
				r.RouteID, total, v.c.MaxRouteHours, base, stops))
		}

		total := len(routes)
		rate := 100.0
		if total > 0 {
			rate = float64(compliant) / float64(total) * 100
		}

		var rep ValidationReport
		rep.Status = v.c.Tier(rate)
		switch rep.Status {
		case StatusPassed:
			rep.Details = fmt.Sprintf("All %d routes comply with %.0f-hour time limit", total, v.c.MaxRouteHours)
		case StatusWarning:
			rep.Details = fmt.Sprintf("%.1f%% of routes comply with time constraint", rate)
		default:
			rep.Details = fmt.Sprintf("Only %.1f%% of routes comply with time constraint", rate)
		}
		v.logViolations(RequirementTime, violations)

		rep.Metrics = map[string]float64{
			"max_route_time_hours":    v.c.MaxRouteHours,
			"stop_time_minutes":       v.c.StopTimeMinutes,
			"total_routes":            float64(total),
			"compliant_routes":        float64(compliant),
			"violations_count":        float64(len(violations)),
			"compliance_rate_percent": rate,
		}
		rep.Inputs = map[string]float64{"routes_analyzed": float64(total)}
		if len(violations) > 0 {
			rep.Recommendations = []string{
				"Implement route time validation before order assignment",
				"Consider splitting long routes into multiple shorter routes",
				"Optimize route planning to minimize driving time",
			}
		}
		return rep
	})
}

// ValidateContract checks that the fleet keeps its designated contract routes.
func (v *FleetComplianceValidator) ValidateContract(routes []domain.Route) ValidationReport {
	required := v.c.RequiredContractRoutes
	desc := fmt.Sprintf("Preserve all %d contract routes to required destinations", required)
	return v.guard(RequirementContract, desc, "contract compliance", func(time.Time) ValidationReport {
		contract := 0
		for _, r := range routes {
			if r.Contract {
				contract++
			}
		}

		shortfall := max(required-contract, 0)

		var rep ValidationReport
		if shortfall == 0 {
			rep.Status = StatusPassed
			rep.Details = fmt.Sprintf("All %d contract routes are preserved", required)
		} else {
			rep.Status = StatusFailed
			rep.Details = fmt.Sprintf("Only %d contract routes found, need %d (%d missing)", contract, required, shortfall)
			rep.Recommendations = []string{
				fmt.Sprintf("Ensure all %d contract routes (%s) are maintained", required, strings.Join(ContractDestinations, ", ")),
				"Implement route preservation checks before system modifications",
				"Add route identification system to track contract vs. additional routes",
			}
		}

		rep.Metrics = map[string]float64{
			"required_contract_routes":  float64(required),
			"current_routes_count":      float64(len(routes)),
			"contract_routes_count":     float64(contract),
			"contract_routes_preserved": float64(min(contract, required)),
			"missing_routes_count":      float64(shortfall),
		}
		rep.Inputs = map[string]float64{"routes_analyzed": float64(len(routes))}
		return rep
	})
}

// ValidateAllRequirements runs the five checks in requirement order.
func (v *FleetComplianceValidator) ValidateAllRequirements(snapshot domain.FleetSnapshot, baselineDailyLoss float64) []ValidationReport {
	reports := []ValidationReport{
		v.ValidateProfitability(snapshot.Routes, baselineDailyLoss),
		v.ValidateProximity(snapshot.Orders, snapshot.Routes),
		v.ValidateCapacity(snapshot.Orders, snapshot.Trucks),
		v.ValidateTime(snapshot.Routes),
		v.ValidateContract(snapshot.Routes),
	}

	for _, r := range reports {
		v.log.Infof("requirement=%s status=%s details=%q", r.RequirementID, r.Status, r.Details)
	}
	return reports
}

func (v *FleetComplianceValidator) logViolations(id string, violations []string) {
	for _, msg := range violations {
		v.log.Debugf("requirement=%s violation=%q", id, msg)
	}
}
