package services

import "gonum.org/v1/gonum/stat"

// Score weights used when ranking valid matches.
const (
	costPenalty      = 10.0
	deviationPenalty = 5.0
)

// EfficiencyScore ranks a valid match; higher is better. It rewards utilization
// and penalizes detour cost and distance.
func EfficiencyScore(metrics map[string]float64) float64 {
	util := stat.Mean([]float64{
		metrics["volume_utilization_percent"],
		metrics["weight_utilization_percent"],
	}, nil)

	return util -
		metrics["additional_cost_usd"]*costPenalty -
		metrics["deviation_distance_miles"]*deviationPenalty
}
