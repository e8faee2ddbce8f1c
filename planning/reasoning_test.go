package planning

import (
	"strings"
	"testing"

	"github.com/flowstate/tractor-beam/models"
)

func TestBuildReasoning(t *testing.T) {
	component := models.Component{ID: "ENGINE-A", Name: "ENGINE-A Diesel Core", FailureRate: 0.031}
	location := models.Location{ID: "heartland", Name: "Heartland Region"}
	demand := []models.QuarterlyDemand{
		{Quarter: 1, Year: 2025, TotalDemand: 100, SafetyStock: 10, TotalRequired: 110},
	}
	allocations := []models.SupplierAllocation{
		alloc("apex", 70, 88, 60),
		alloc("forge", 30, 75, 100),
	}

	recommendation, quantityWhy, allocationWhy, riskWhy := BuildReasoning(
		component, location, demand, allocations, PairImpact{RiskDelta: 12.5})

	if !strings.Contains(recommendation, "110 units") || !strings.Contains(recommendation, "apex at 70%") {
		t.Errorf("recommendation = %q", recommendation)
	}
	if !strings.Contains(quantityWhy, "100 units") || !strings.Contains(quantityWhy, "10 units of safety stock") {
		t.Errorf("quantityWhy = %q", quantityWhy)
	}
	if !strings.Contains(allocationWhy, "apex 70% (quality)") || !strings.Contains(allocationWhy, "forge 30% (quality)") {
		t.Errorf("allocationWhy = %q", allocationWhy)
	}
	if !strings.Contains(riskWhy, "lowers supply risk") || !strings.Contains(riskWhy, "3.1%") {
		t.Errorf("riskWhy = %q", riskWhy)
	}
}

func TestBuildReasoning_RiskBranches(t *testing.T) {
	component := models.Component{ID: "AXLE-HD", Name: "Heavy Duty Axle", FailureRate: 0.011}
	location := models.Location{ID: "heartland", Name: "Heartland Region"}
	allocations := []models.SupplierAllocation{alloc("solo", 100, 70, 70)}

	_, _, _, worse := BuildReasoning(component, location, nil, allocations, PairImpact{RiskDelta: -4})
	if !strings.Contains(worse, "higher concentration") {
		t.Errorf("negative delta riskWhy = %q", worse)
	}
	_, _, _, flat := BuildReasoning(component, location, nil, allocations, PairImpact{})
	if !strings.Contains(flat, "unchanged") {
		t.Errorf("zero delta riskWhy = %q", flat)
	}
}
