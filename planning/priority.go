package planning

import (
	"strings"

	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
)

// Prioritization is a set of pure functions over a pair's summarized
// cost and risk deltas. No state, no I/O.

const (
	costHighThreshold     = -500_000.0
	costModerateThreshold = -100_000.0
	riskHighThreshold     = 0.5
	riskModerateThreshold = 0.2

	// High-value components (ENGINE/PREMIUM in the name) get scaled
	// thresholds: cost doubled, risk 1.5x.
	highValueCostScale = 2.0
	highValueRiskScale = 1.5
)

func isHighValue(component models.Component) bool {
	name := strings.ToUpper(component.Name)
	return strings.Contains(name, "ENGINE") || strings.Contains(name, "PREMIUM")
}

func isEngine(component models.Component) bool {
	return strings.Contains(strings.ToUpper(component.Name), "ENGINE")
}

func isPremium(component models.Component) bool {
	return strings.Contains(strings.ToUpper(component.Name), "PREMIUM")
}

// UrgencyFor classifies a quarter's recommendation. First-quarter buys
// of engines or failure-prone components (>3%) are immediate; any
// second-quarter reference is future.
func UrgencyFor(quarter int, component models.Component) models.Urgency {
	if quarter >= 2 {
		return models.UrgencyFuture
	}
	if isEngine(component) || component.FailureRate > 0.03 {
		return models.UrgencyImmediate
	}
	return models.UrgencyUpcoming
}

// ImpactFor classifies the combined cost and risk effect. costDelta is
// negative when the recommendation saves money.
func ImpactFor(costDelta, riskDelta float64, component models.Component) models.ImpactLevel {
	costHigh, costModerate := costHighThreshold, costModerateThreshold
	riskHigh, riskModerate := riskHighThreshold, riskModerateThreshold
	if isHighValue(component) {
		costHigh *= highValueCostScale
		costModerate *= highValueCostScale
		riskHigh *= highValueRiskScale
		riskModerate *= highValueRiskScale
	}
	switch {
	case costDelta <= costHigh || riskDelta >= riskHigh:
		return models.ImpactHigh
	case costDelta <= costModerate || riskDelta >= riskModerate:
		return models.ImpactModerate
	default:
		return models.ImpactLow
	}
}

var priorityTable = map[models.Urgency]map[models.ImpactLevel]models.Priority{
	models.UrgencyImmediate: {
		models.ImpactHigh:     models.PriorityCritical,
		models.ImpactModerate: models.PriorityImportant,
		models.ImpactLow:      models.PriorityStandard,
	},
	models.UrgencyUpcoming: {
		models.ImpactHigh:     models.PriorityImportant,
		models.ImpactModerate: models.PriorityStandard,
		models.ImpactLow:      models.PriorityOptional,
	},
	models.UrgencyFuture: {
		models.ImpactHigh:     models.PriorityStandard,
		models.ImpactModerate: models.PriorityOptional,
		models.ImpactLow:      models.PriorityOptional,
	},
}

// PriorityFor is the fixed 3x3 lookup over urgency and impact.
func PriorityFor(urgency models.Urgency, impact models.ImpactLevel) models.Priority {
	return priorityTable[urgency][impact]
}

func urgencyMultiplier(urgency models.Urgency) float64 {
	switch urgency {
	case models.UrgencyImmediate:
		return 1.0
	case models.UrgencyUpcoming:
		return 0.6
	default:
		return 0.3
	}
}

func componentMultiplier(component models.Component) float64 {
	switch {
	case isEngine(component):
		return 1.2
	case isPremium(component):
		return 1.1
	default:
		return 1.0
	}
}

// OpportunityScore ranks a pair 0-120ish: normalized cost savings
// (capped at $1M) weighted 0.7, clamped risk reduction weighted 0.3,
// scaled by urgency and component importance, times 100.
func OpportunityScore(costDelta, riskDelta float64, urgency models.Urgency, component models.Component) float64 {
	costComponent := utils.Clamp(abs(costDelta)/1_000_000, 0, 1) * 0.7
	riskComponent := utils.Clamp(riskDelta, 0, 1) * 0.3
	return (costComponent + riskComponent) * urgencyMultiplier(urgency) * componentMultiplier(component) * 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
