package planning

import (
	"testing"
	"time"

	"github.com/flowstate/tractor-beam/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func points(start time.Time, values ...float64) []models.ForecastPoint {
	pts := make([]models.ForecastPoint, len(values))
	for i, v := range values {
		pts[i] = models.ForecastPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return pts
}

var horizon2025 = day(2025, time.January, 1)

func TestAggregateDemand_SafetyStockFormula(t *testing.T) {
	// 1.65 * stddev([100,105,95,110,100]) * sqrt(7), rounded up.
	// stddev = sqrt(130/4) = 5.7008...; 1.65 * 5.7008 * 2.6457 = 24.887 -> 25.
	series := map[string][]models.ForecastPoint{
		"TB-100": points(day(2025, time.January, 1), 100, 105, 95, 110, 100),
	}

	demand := AggregateDemand(series, 7, horizon2025, 2025)
	if len(demand) != 1 {
		t.Fatalf("expected 1 quarter, got %d", len(demand))
	}
	q1 := demand[0]
	if q1.Quarter != 1 || q1.Year != 2025 {
		t.Fatalf("unexpected quarter key %d/%d", q1.Quarter, q1.Year)
	}
	if q1.TotalDemand != 510 {
		t.Errorf("total demand = %d, want 510", q1.TotalDemand)
	}
	if q1.SafetyStock != 25 {
		t.Errorf("safety stock = %d, want 25", q1.SafetyStock)
	}
	if q1.TotalRequired != 535 {
		t.Errorf("total required = %d, want 535", q1.TotalRequired)
	}
}

func TestAggregateDemand_TotalRequiredInvariant(t *testing.T) {
	series := map[string][]models.ForecastPoint{
		"TB-100": points(day(2025, time.January, 1), 12.4, 33.1, 7.9, 40.2, 19.8, 25.5),
		"TB-300": points(day(2025, time.February, 1), 8.1, 9.9, 14.2),
		"TB-500": points(day(2025, time.April, 10), 50, 61, 47, 58),
	}

	for _, qd := range AggregateDemand(series, 5.5, horizon2025, 2025) {
		if qd.TotalRequired != qd.TotalDemand+qd.SafetyStock {
			t.Errorf("Q%d: totalRequired %d != totalDemand %d + safetyStock %d",
				qd.Quarter, qd.TotalRequired, qd.TotalDemand, qd.SafetyStock)
		}
	}
}

func TestAggregateDemand_SinglePointQuarterHasZeroSafetyStock(t *testing.T) {
	series := map[string][]models.ForecastPoint{
		"TB-100": {{Date: day(2025, time.April, 2), Value: 200}},
	}

	demand := AggregateDemand(series, 7, horizon2025, 2025)
	if len(demand) != 1 {
		t.Fatalf("expected 1 quarter, got %d", len(demand))
	}
	if demand[0].SafetyStock != 0 {
		t.Errorf("safety stock = %d, want 0 for a single-point quarter", demand[0].SafetyStock)
	}
	if demand[0].TotalRequired != 200 {
		t.Errorf("total required = %d, want 200", demand[0].TotalRequired)
	}
}

func TestAggregateDemand_ZeroVarianceQuarterHasZeroSafetyStock(t *testing.T) {
	series := map[string][]models.ForecastPoint{
		"TB-100": points(day(2025, time.January, 6), 100, 100, 100, 100),
	}

	demand := AggregateDemand(series, 9, horizon2025, 2025)
	if demand[0].SafetyStock != 0 {
		t.Errorf("safety stock = %d, want 0 when variance is zero", demand[0].SafetyStock)
	}
}

func TestAggregateDemand_DiscardsPointsBeforeHorizon(t *testing.T) {
	series := map[string][]models.ForecastPoint{
		"TB-100": append(
			points(day(2024, time.December, 20), 500, 500, 500),
			points(day(2025, time.January, 1), 100, 110)...),
	}

	demand := AggregateDemand(series, 7, horizon2025, 2025)
	if len(demand) != 1 {
		t.Fatalf("expected only Q1 2025, got %d quarters", len(demand))
	}
	if demand[0].TotalDemand != 210 {
		t.Errorf("total demand = %d, want 210 (2024 points discarded)", demand[0].TotalDemand)
	}
}

func TestAggregateDemand_PerModelContributions(t *testing.T) {
	series := map[string][]models.ForecastPoint{
		"TB-100": points(day(2025, time.January, 1), 30, 30),
		"TB-300": points(day(2025, time.January, 3), 20, 20),
	}

	demand := AggregateDemand(series, 7, horizon2025, 2025)
	q1 := demand[0]
	if len(q1.Contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(q1.Contributions))
	}
	var shareSum float64
	for _, c := range q1.Contributions {
		shareSum += c.Share
	}
	if shareSum < 0.999 || shareSum > 1.001 {
		t.Errorf("contribution shares sum to %f, want 1.0", shareSum)
	}
	if q1.Contributions[0].ModelId != "TB-100" || q1.Contributions[0].Units != 60 {
		t.Errorf("TB-100 contribution = %+v, want 60 units", q1.Contributions[0])
	}
}

func TestAverageLeadTime(t *testing.T) {
	location := models.Location{
		ID:          "heartland",
		SupplierIds: models.StringList{"a", "b"},
	}
	suppliers := []models.Supplier{
		{ID: "a", BaseLeadTimeDays: 6},
		{ID: "b", BaseLeadTimeDays: 10},
		{ID: "c", BaseLeadTimeDays: 30}, // not reachable, ignored
	}
	if got := AverageLeadTime(location, suppliers); got != 8 {
		t.Errorf("average lead time = %f, want 8", got)
	}

	empty := models.Location{ID: "nowhere"}
	if got := AverageLeadTime(empty, suppliers); got != 7 {
		t.Errorf("default lead time = %f, want 7", got)
	}
}
