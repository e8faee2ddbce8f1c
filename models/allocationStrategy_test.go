package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testPayload() StrategyPayload {
	return StrategyPayload{
		SchemaVersion:    StrategySchemaVersion,
		LocationId:       "heartland",
		ComponentId:      "ENGINE-A",
		CurrentInventory: 12,
		Demand: []QuarterlyDemand{
			{Quarter: 1, Year: 2025, TotalDemand: 100, SafetyStock: 10, TotalRequired: 110},
			{Quarter: 2, Year: 2025, TotalDemand: 120, SafetyStock: 8, TotalRequired: 128},
		},
		Allocations: []SupplierAllocation{
			{
				SupplierId: "a", SupplierName: "Apex", Percentage: 70,
				QualityScore: 88, CostScore: 60, TotalScore: 79.6, Reason: ReasonQuality,
				Quantities: []QuarterQty{
					{Quarter: 1, Year: 2025, Units: 77, Cost: decimal.NewFromInt(7700)},
					{Quarter: 2, Year: 2025, Units: 90, Cost: decimal.NewFromInt(9000)},
				},
			},
			{
				SupplierId: "b", SupplierName: "Forge", Percentage: 30,
				QualityScore: 75, CostScore: 100, TotalScore: 82.5, Reason: ReasonSafety,
				Quantities: []QuarterQty{
					{Quarter: 1, Year: 2025, Units: 33, Cost: decimal.NewFromInt(2970)},
				},
			},
		},
		Recommendation: "split the buy",
		QuantityWhy:    "forecast plus safety stock",
		AllocationWhy:  "scores with diversification",
		RiskWhy:        "reduced concentration",
	}
}

func TestStrategyPayloadRoundTrip(t *testing.T) {
	payload := testPayload()

	encoded, err := payload.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeStrategyPayload(encoded)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.LocationId != payload.LocationId || decoded.ComponentId != payload.ComponentId {
		t.Errorf("pair key lost: %s/%s", decoded.LocationId, decoded.ComponentId)
	}
	if len(decoded.Demand) != 2 || len(decoded.Allocations) != 2 {
		t.Fatalf("structure lost: %d demand rows, %d allocations", len(decoded.Demand), len(decoded.Allocations))
	}
	if decoded.Allocations[0].Reason != ReasonQuality || decoded.Allocations[1].Reason != ReasonSafety {
		t.Error("allocation reasons did not survive the round trip")
	}
	if !decoded.Allocations[0].Quantities[0].Cost.Equal(decimal.NewFromInt(7700)) {
		t.Errorf("cost = %s, want 7700", decoded.Allocations[0].Quantities[0].Cost)
	}
	if decoded.RiskWhy != payload.RiskWhy {
		t.Error("reasoning strings did not survive the round trip")
	}
}

func TestDecodeStrategyPayload_RejectsWrongVersion(t *testing.T) {
	payload := testPayload()
	payload.SchemaVersion = StrategySchemaVersion + 1
	encoded, err := payload.Encode()
	if err != nil {
		t.Fatal(err)
	}

	_, err = DecodeStrategyPayload(encoded)
	if err == nil || !strings.Contains(err.Error(), "schema version") {
		t.Fatalf("expected schema version error, got %v", err)
	}
}

func TestDecodeStrategyPayload_RejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeStrategyPayload([]byte("{not json")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFilterQuarter(t *testing.T) {
	filtered := testPayload().FilterQuarter(1, 2025)

	if len(filtered.Demand) != 1 || filtered.Demand[0].Quarter != 1 {
		t.Fatalf("demand = %+v, want only Q1", filtered.Demand)
	}
	// Both suppliers stay; only their quantity rows narrow.
	if len(filtered.Allocations) != 2 {
		t.Fatalf("allocations = %d, want 2", len(filtered.Allocations))
	}
	for _, a := range filtered.Allocations {
		for _, q := range a.Quantities {
			if q.Quarter != 1 {
				t.Errorf("%s kept a Q%d quantity row", a.SupplierId, q.Quarter)
			}
		}
	}
	if filtered.Allocations[0].Percentage != 70 {
		t.Errorf("pair-level percentage changed: %d", filtered.Allocations[0].Percentage)
	}
	if filtered.Recommendation == "" || filtered.RiskWhy == "" {
		t.Error("reasoning must survive quarter filtering")
	}

	// A quarter with no rows yields an empty but well-formed payload.
	empty := testPayload().FilterQuarter(3, 2025)
	if len(empty.Demand) != 0 {
		t.Errorf("Q3 demand = %+v, want none", empty.Demand)
	}
	if len(empty.Allocations) != 2 || empty.Allocations[1].Quantities != nil {
		t.Error("Q3 filter should keep suppliers with no quantity rows")
	}
}
