package planning

import (
	"github.com/flowstate/tractor-beam/models"
	"github.com/shopspring/decimal"
)

// PairImpact is the recommended-vs-current diff for one
// (location, component) pair. Quarter maps are independent per quarter,
// never cumulative; the classification fields summarize both quarters.
type PairImpact struct {
	CurrentUnits     map[int]int
	CurrentCosts     map[int]decimal.Decimal
	RecommendedUnits map[int]int
	RecommendedCosts map[int]decimal.Decimal
	UnitDeltas       map[int]int
	CostDeltas       map[int]decimal.Decimal

	TotalCostDelta decimal.Decimal
	RiskDelta      float64

	Urgency          models.Urgency
	ImpactLevel      models.ImpactLevel
	Priority         models.Priority
	OpportunityScore float64
}

// ComputeImpact diffs the recommended strategy against the current
// baseline quarter by quarter, computes the risk delta from the two
// splits, and classifies the pair. The pair-level urgency is taken from
// the first planning quarter's perspective.
func ComputeImpact(component models.Component, current *CurrentStrategy, demand []models.QuarterlyDemand, allocations []models.SupplierAllocation, quarters []int) PairImpact {
	impact := PairImpact{
		CurrentUnits:     map[int]int{},
		CurrentCosts:     map[int]decimal.Decimal{},
		RecommendedUnits: map[int]int{},
		RecommendedCosts: map[int]decimal.Decimal{},
		UnitDeltas:       map[int]int{},
		CostDeltas:       map[int]decimal.Decimal{},
		TotalCostDelta:   decimal.Zero,
	}

	for _, q := range quarters {
		recUnits := 0
		recCost := decimal.Zero
		for _, a := range allocations {
			for _, qty := range a.Quantities {
				if qty.Quarter == q {
					recUnits += qty.Units
					recCost = recCost.Add(qty.Cost)
				}
			}
		}
		curUnits := current.QuarterUnits[q]
		curCost := current.QuarterCosts[q]

		impact.RecommendedUnits[q] = recUnits
		impact.RecommendedCosts[q] = recCost
		impact.CurrentUnits[q] = curUnits
		impact.CurrentCosts[q] = curCost
		impact.UnitDeltas[q] = recUnits - curUnits
		costDelta := recCost.Sub(curCost)
		impact.CostDeltas[q] = costDelta
		impact.TotalCostDelta = impact.TotalCostDelta.Add(costDelta)
	}

	recommendedSplit := map[string]int{}
	for _, a := range allocations {
		recommendedSplit[a.SupplierId] = a.Percentage
	}
	currentRisk := AllocationRisk(current.Split, component.FailureRate)
	recommendedRisk := AllocationRisk(recommendedSplit, component.FailureRate)
	impact.RiskDelta = RiskDelta(currentRisk, recommendedRisk)

	totalCostDelta := impact.TotalCostDelta.InexactFloat64()
	firstQuarter := 1
	if len(quarters) > 0 {
		firstQuarter = quarters[0]
	}
	impact.Urgency = UrgencyFor(firstQuarter, component)
	impact.ImpactLevel = ImpactFor(totalCostDelta, impact.RiskDelta, component)
	impact.Priority = PriorityFor(impact.Urgency, impact.ImpactLevel)
	impact.OpportunityScore = OpportunityScore(totalCostDelta, impact.RiskDelta, impact.Urgency, component)
	return impact
}
