package config

import "time"

// Planning horizon and statistical constants shared by the pipeline.
const (
	// PlanningYear is the year both planning quarters fall in.
	PlanningYear = 2025

	// ServiceLevelZ is the z-value for a ~95% service level, used in
	// the safety stock formula Z * sigma(daily demand) * sqrt(lead time).
	ServiceLevelZ = 1.65

	// DefaultLeadTimeDays applies when a location has no reachable
	// suppliers to average a lead time over.
	DefaultLeadTimeDays = 7.0
)

// PlanningQuarters are the quarters the pipeline plans for, in order.
func PlanningQuarters() []int {
	return []int{1, 2}
}

// PlanningHorizonStart is the first date forecast points count from.
// Anything earlier is discarded by the demand aggregator.
func PlanningHorizonStart() time.Time {
	return time.Date(PlanningYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}
