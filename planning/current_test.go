package planning

import (
	"testing"
	"time"

	"github.com/flowstate/tractor-beam/models"
	"github.com/shopspring/decimal"
)

func report(componentId, supplierId string, date time.Time, units int) models.HistoricalReport {
	return models.HistoricalReport{
		LocationId:  "heartland",
		ComponentId: componentId,
		SupplierId:  supplierId,
		ReportDate:  date,
		Units:       units,
	}
}

func TestDeriveCurrentStrategy_NoHistory(t *testing.T) {
	component := models.Component{ID: "AXLE-HD", Name: "Heavy Duty Axle"}
	location := models.Location{ID: "heartland"}

	cs := DeriveCurrentStrategy(component, location, nil, nil, []int{1, 2})

	if cs.Inventory != 0 {
		t.Errorf("inventory = %d, want 0", cs.Inventory)
	}
	if len(cs.Split) != 0 {
		t.Errorf("split = %v, want empty", cs.Split)
	}
	for _, q := range []int{1, 2} {
		if cs.QuarterUnits[q] != 0 || !cs.QuarterCosts[q].IsZero() {
			t.Errorf("Q%d baseline = %d units / %s, want all zero", q, cs.QuarterUnits[q], cs.QuarterCosts[q])
		}
	}
}

func TestDeriveCurrentStrategy_FromReports(t *testing.T) {
	component := models.Component{ID: "AXLE-HD", Name: "Heavy Duty Axle"}
	location := models.Location{ID: "heartland"}
	suppliers := []models.Supplier{
		supplierWithPrice("a", "AXLE-HD", 100),
		supplierWithPrice("b", "AXLE-HD", 80),
	}
	reports := []models.HistoricalReport{
		report("AXLE-HD", "a", day(2024, time.January, 15), 60),
		report("AXLE-HD", "a", day(2024, time.February, 10), 30),
		report("AXLE-HD", "b", day(2024, time.January, 20), 10),
		// Another component's purchases must not leak in.
		report("ENGINE-A", "a", day(2024, time.January, 15), 500),
	}

	cs := DeriveCurrentStrategy(component, location, reports, suppliers, []int{1, 2})

	if cs.Split["a"] != 90 || cs.Split["b"] != 10 {
		t.Errorf("split = %v, want a:90 b:10", cs.Split)
	}
	// Inventory: units received on the latest report date (Feb 10).
	if cs.Inventory != 30 {
		t.Errorf("inventory = %d, want 30", cs.Inventory)
	}
	// All 100 units fall in one historical quarter, so the status-quo
	// projection is 100 units per planning quarter at today's prices:
	// 90*100 + 10*80.
	for _, q := range []int{1, 2} {
		if cs.QuarterUnits[q] != 100 {
			t.Errorf("Q%d units = %d, want 100", q, cs.QuarterUnits[q])
		}
		if !cs.QuarterCosts[q].Equal(decimal.NewFromInt(9800)) {
			t.Errorf("Q%d cost = %s, want 9800", q, cs.QuarterCosts[q])
		}
	}
}

func TestDeriveCurrentStrategy_AveragesAcrossQuarters(t *testing.T) {
	component := models.Component{ID: "AXLE-HD", Name: "Heavy Duty Axle"}
	location := models.Location{ID: "heartland"}
	suppliers := []models.Supplier{supplierWithPrice("a", "AXLE-HD", 100)}
	reports := []models.HistoricalReport{
		report("AXLE-HD", "a", day(2024, time.February, 1), 80),
		report("AXLE-HD", "a", day(2024, time.May, 1), 120),
		report("AXLE-HD", "a", day(2024, time.August, 1), 100),
	}

	cs := DeriveCurrentStrategy(component, location, reports, suppliers, []int{1})

	// 300 units over three historical quarters -> 100 per quarter.
	if cs.QuarterUnits[1] != 100 {
		t.Errorf("projected units = %d, want 100", cs.QuarterUnits[1])
	}
	if cs.Split["a"] != 100 {
		t.Errorf("split = %v, want a:100", cs.Split)
	}
}

func TestPercentSplit_ResidualToLargest(t *testing.T) {
	split := percentSplit(map[string]int{"a": 1, "b": 1, "c": 1}, 3)

	sum := 0
	for _, pct := range split {
		sum += pct
	}
	if sum != 100 {
		t.Fatalf("split sums to %d, want exactly 100", sum)
	}
	// Equal units tie-break on supplier id; "a" absorbs the residual.
	if split["a"] != 34 || split["b"] != 33 || split["c"] != 33 {
		t.Errorf("split = %v, want a:34 b:33 c:33", split)
	}
}
