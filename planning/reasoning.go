package planning

import (
	"fmt"
	"strings"

	"github.com/flowstate/tractor-beam/models"
)

// BuildReasoning renders the frozen natural-language explanation for a
// strategy: a top-level recommendation plus quantity, allocation and
// risk rationales. Generated once at build time; the presentation layer
// never re-derives these.
func BuildReasoning(component models.Component, location models.Location, demand []models.QuarterlyDemand, allocations []models.SupplierAllocation, impact PairImpact) (recommendation, quantityWhy, allocationWhy, riskWhy string) {
	totalRequired := 0
	totalSafety := 0
	for _, d := range demand {
		totalRequired += d.TotalRequired
		totalSafety += d.SafetyStock
	}

	var lead models.SupplierAllocation
	if len(allocations) > 0 {
		lead = allocations[0]
	}

	recommendation = fmt.Sprintf(
		"Source %d units of %s for %s across %d supplier(s), led by %s at %d%%.",
		totalRequired, component.Name, location.Name, len(allocations), lead.SupplierName, lead.Percentage)

	quantityWhy = fmt.Sprintf(
		"Forecast demand totals %d units over the planning horizon; %d units of safety stock cover demand variability against supplier lead times.",
		totalRequired-totalSafety, totalSafety)

	var parts []string
	for _, a := range allocations {
		parts = append(parts, fmt.Sprintf("%s %d%% (%s)", a.SupplierName, a.Percentage, a.Reason))
	}
	allocationWhy = fmt.Sprintf(
		"Allocation reflects weighted quality and cost scores with diversification rules applied: %s.",
		strings.Join(parts, ", "))

	switch {
	case impact.RiskDelta > 0:
		riskWhy = fmt.Sprintf(
			"The recommended split lowers supply risk (risk delta %.2f) by reducing concentration on a single supplier for a component with a %.1f%% baseline failure rate.",
			impact.RiskDelta, component.FailureRate*100)
	case impact.RiskDelta < 0:
		riskWhy = fmt.Sprintf(
			"The recommended split accepts slightly higher concentration (risk delta %.2f) in exchange for cost savings.",
			impact.RiskDelta)
	default:
		riskWhy = "The recommended split leaves supply risk unchanged."
	}
	return recommendation, quantityWhy, allocationWhy, riskWhy
}
