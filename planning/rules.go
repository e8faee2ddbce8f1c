package planning

import (
	"math"
	"sort"

	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
	"github.com/shopspring/decimal"
)

// Thresholds for the diversification rule chain.
const (
	concentrationCapPct   = 90
	nearEqualQualityDiff  = 10.0
	costPreferenceMaxPct  = 20
	safetyStockShareFloor = 0.05
	safetyMinQuality      = 50.0
	q2LeanMinQuality      = 60.0
	q2LeanMaxPct          = 15
)

// RuleContext carries the read-only inputs rules may consult.
type RuleContext struct {
	// Demand may be nil when allocations are computed without a
	// demand aggregate; demand-dependent rules then do nothing.
	Demand []models.QuarterlyDemand

	// Prices maps supplier id -> unit price for the component.
	Prices map[string]decimal.Decimal
}

// AllocationRule is one named transform over the allocation list.
// Rules run in the order DiversificationRules returns them; each rule's
// input is the previous rule's output, and that ordering is part of the
// contract.
type AllocationRule struct {
	Name  string
	Apply func([]models.SupplierAllocation, RuleContext) []models.SupplierAllocation
}

func DiversificationRules() []AllocationRule {
	return []AllocationRule{
		{Name: "concentration-cap", Apply: applyConcentrationCap},
		{Name: "cost-preference", Apply: applyCostPreference},
		{Name: "safety-stock-routing", Apply: applySafetyStockRouting},
		{Name: "q2-cost-lean", Apply: applyQ2CostLean},
	}
}

// ApplyRules runs the rule chain and finalizes: negative percentages
// floor at 0, the residual to 100 lands on the highest-scored supplier,
// and the list is re-sorted by final percentage descending.
func ApplyRules(allocations []models.SupplierAllocation, rc RuleContext, rules []AllocationRule) []models.SupplierAllocation {
	out := make([]models.SupplierAllocation, len(allocations))
	copy(out, allocations)
	for _, rule := range rules {
		out = rule.Apply(out, rc)
	}
	return finalizePercentages(out)
}

// applyConcentrationCap clamps the dominant supplier to 90% and hands
// the excess to the rest proportional to their total scores.
func applyConcentrationCap(allocations []models.SupplierAllocation, _ RuleContext) []models.SupplierAllocation {
	if len(allocations) < 2 {
		return allocations
	}
	top := topIndex(allocations)
	if allocations[top].Percentage <= concentrationCapPct {
		return allocations
	}
	excess := allocations[top].Percentage - concentrationCapPct
	allocations[top].Percentage = concentrationCapPct

	var restScore float64
	for i := range allocations {
		if i != top {
			restScore += allocations[i].TotalScore
		}
	}
	if restScore <= 0 {
		allocations[top].Percentage += excess
		return allocations
	}
	for i := range allocations {
		if i == top {
			continue
		}
		share := utils.RoundToInt(float64(excess) * allocations[i].TotalScore / restScore)
		if share > 0 {
			allocations[i].Percentage += share
			allocations[i].Reason = models.ReasonDiversity
		}
	}
	return allocations
}

// applyCostPreference shifts share toward the runner-up when the top
// two are near-equal on quality but the runner-up is cheaper.
func applyCostPreference(allocations []models.SupplierAllocation, _ RuleContext) []models.SupplierAllocation {
	if len(allocations) < 2 {
		return allocations
	}
	first := topIndex(allocations)
	second := secondIndex(allocations, first)

	qualityDiff := math.Abs(allocations[first].QualityScore - allocations[second].QualityScore)
	costDiff := allocations[second].CostScore - allocations[first].CostScore
	if qualityDiff >= nearEqualQualityDiff || costDiff <= 0 {
		return allocations
	}
	shift := utils.RoundToInt(costDiff / 2)
	if shift > costPreferenceMaxPct {
		shift = costPreferenceMaxPct
	}
	if shift <= 0 {
		return allocations
	}
	allocations[first].Percentage -= shift
	allocations[second].Percentage += shift
	allocations[second].Reason = models.ReasonCost
	return allocations
}

// applySafetyStockRouting routes the safety-stock share of the buy away
// from the dominant supplier to the cheapest supplier of usable quality.
func applySafetyStockRouting(allocations []models.SupplierAllocation, rc RuleContext) []models.SupplierAllocation {
	if len(allocations) < 2 || len(rc.Demand) == 0 {
		return allocations
	}
	var safety, required int
	for _, d := range rc.Demand {
		safety += d.SafetyStock
		required += d.TotalRequired
	}
	if required <= 0 || float64(safety) <= safetyStockShareFloor*float64(required) {
		return allocations
	}

	top := topIndex(allocations)
	target := -1
	for i := range allocations {
		if i == top || allocations[i].QualityScore <= safetyMinQuality {
			continue
		}
		if target == -1 || priceOf(rc, allocations[i].SupplierId).LessThan(priceOf(rc, allocations[target].SupplierId)) {
			target = i
		}
	}
	if target == -1 {
		return allocations
	}

	pct := utils.RoundToInt(float64(safety) / float64(required) * 100)
	if pct <= 0 {
		return allocations
	}
	allocations[top].Percentage -= pct
	allocations[target].Percentage += pct
	allocations[target].Reason = models.ReasonSafety
	return allocations
}

// applyQ2CostLean leans the second-quarter buy toward the most
// cost-effective supplier once enough suppliers clear the quality bar.
func applyQ2CostLean(allocations []models.SupplierAllocation, rc RuleContext) []models.SupplierAllocation {
	if len(allocations) < 2 || !hasQuarter(rc.Demand, 2) {
		return allocations
	}
	qualified := 0
	for _, a := range allocations {
		if a.QualityScore > q2LeanMinQuality {
			qualified++
		}
	}
	if qualified < 2 {
		return allocations
	}

	top := topIndex(allocations)
	target := -1
	for i := range allocations {
		if i == top || allocations[i].QualityScore <= q2LeanMinQuality {
			continue
		}
		if target == -1 || allocations[i].CostScore > allocations[target].CostScore {
			target = i
		}
	}
	if target == -1 {
		return allocations
	}
	shift := utils.RoundToInt(allocations[target].CostScore / 5)
	if shift > q2LeanMaxPct {
		shift = q2LeanMaxPct
	}
	if shift <= 0 {
		return allocations
	}
	allocations[top].Percentage -= shift
	allocations[target].Percentage += shift
	allocations[target].Reason = models.ReasonQ2Cost
	return allocations
}

func finalizePercentages(allocations []models.SupplierAllocation) []models.SupplierAllocation {
	sum := 0
	for i := range allocations {
		if allocations[i].Percentage < 0 {
			allocations[i].Percentage = 0
		}
		sum += allocations[i].Percentage
	}
	if residual := 100 - sum; residual != 0 && len(allocations) > 0 {
		best := 0
		for i := range allocations {
			if allocations[i].TotalScore > allocations[best].TotalScore {
				best = i
			}
		}
		allocations[best].Percentage += residual
		if allocations[best].Percentage < 0 {
			allocations[best].Percentage = 0
		}
	}
	sort.SliceStable(allocations, func(i, j int) bool {
		if allocations[i].Percentage != allocations[j].Percentage {
			return allocations[i].Percentage > allocations[j].Percentage
		}
		return allocations[i].TotalScore > allocations[j].TotalScore
	})
	return allocations
}

func topIndex(allocations []models.SupplierAllocation) int {
	top := 0
	for i := range allocations {
		if allocations[i].Percentage > allocations[top].Percentage {
			top = i
		}
	}
	return top
}

func secondIndex(allocations []models.SupplierAllocation, top int) int {
	second := -1
	for i := range allocations {
		if i == top {
			continue
		}
		if second == -1 || allocations[i].Percentage > allocations[second].Percentage {
			second = i
		}
	}
	return second
}

func hasQuarter(demand []models.QuarterlyDemand, quarter int) bool {
	for _, d := range demand {
		if d.Quarter == quarter {
			return true
		}
	}
	return false
}

func priceOf(rc RuleContext, supplierId string) decimal.Decimal {
	if p, ok := rc.Prices[supplierId]; ok {
		return p
	}
	return decimal.Zero
}
