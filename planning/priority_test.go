package planning

import (
	"math"
	"testing"

	"github.com/flowstate/tractor-beam/models"
)

var (
	engineComponent  = models.Component{ID: "ENGINE-A", Name: "ENGINE-A Diesel Core", FailureRate: 0.031}
	premiumComponent = models.Component{ID: "PREMIUM-CAB", Name: "PREMIUM-CAB Operator Cabin", FailureRate: 0.008}
	pumpComponent    = models.Component{ID: "HYDRAULIC-PUMP", Name: "Hydraulic Pump Assembly", FailureRate: 0.042}
	axleComponent    = models.Component{ID: "AXLE-HD", Name: "Heavy Duty Axle", FailureRate: 0.011}
	gearboxComponent = models.Component{ID: "TRANSMISSION-STD", Name: "Standard Transmission", FailureRate: 0.03}
)

func TestUrgencyFor(t *testing.T) {
	cases := []struct {
		name      string
		quarter   int
		component models.Component
		want      models.Urgency
	}{
		{"Q1 engine", 1, engineComponent, models.UrgencyImmediate},
		{"Q1 failure-prone", 1, pumpComponent, models.UrgencyImmediate},
		{"Q1 reliable", 1, axleComponent, models.UrgencyUpcoming},
		{"Q1 failure rate exactly at bar", 1, gearboxComponent, models.UrgencyUpcoming},
		{"Q2 engine", 2, engineComponent, models.UrgencyFuture},
		{"Q2 reliable", 2, axleComponent, models.UrgencyFuture},
	}
	for _, tc := range cases {
		if got := UrgencyFor(tc.quarter, tc.component); got != tc.want {
			t.Errorf("%s: urgency = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestImpactFor_StandardComponent(t *testing.T) {
	cases := []struct {
		name      string
		costDelta float64
		riskDelta float64
		want      models.ImpactLevel
	}{
		{"big savings", -600_000, 0, models.ImpactHigh},
		{"savings at high threshold", -500_000, 0, models.ImpactHigh},
		{"moderate savings", -150_000, 0, models.ImpactModerate},
		{"savings at moderate threshold", -100_000, 0, models.ImpactModerate},
		{"small savings", -50_000, 0, models.ImpactLow},
		{"risk at high threshold", 0, 0.5, models.ImpactHigh},
		{"risk at moderate threshold", 0, 0.2, models.ImpactModerate},
		{"risk below moderate", 0, 0.19, models.ImpactLow},
		{"cost increase low risk", 40_000, 0.1, models.ImpactLow},
	}
	for _, tc := range cases {
		if got := ImpactFor(tc.costDelta, tc.riskDelta, axleComponent); got != tc.want {
			t.Errorf("%s: impact = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestImpactFor_HighValueScaledThresholds(t *testing.T) {
	// Engines and premium parts need doubled cost savings (1M/200k) and
	// 1.5x risk deltas (0.75/0.3) to reach the same level.
	cases := []struct {
		name      string
		costDelta float64
		riskDelta float64
		component models.Component
		want      models.ImpactLevel
	}{
		{"engine savings below scaled high bar", -600_000, 0.6, engineComponent, models.ImpactModerate},
		{"engine risk above scaled high bar", 0, 0.8, engineComponent, models.ImpactHigh},
		{"engine savings above scaled high bar", -1_200_000, 0, engineComponent, models.ImpactHigh},
		{"premium below scaled moderate bars", -150_000, 0.2, premiumComponent, models.ImpactLow},
		{"premium at scaled moderate bars", -200_000, 0, premiumComponent, models.ImpactModerate},
	}
	for _, tc := range cases {
		if got := ImpactFor(tc.costDelta, tc.riskDelta, tc.component); got != tc.want {
			t.Errorf("%s: impact = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestPriorityFor_FullTable(t *testing.T) {
	cases := []struct {
		urgency models.Urgency
		impact  models.ImpactLevel
		want    models.Priority
	}{
		{models.UrgencyImmediate, models.ImpactHigh, models.PriorityCritical},
		{models.UrgencyImmediate, models.ImpactModerate, models.PriorityImportant},
		{models.UrgencyImmediate, models.ImpactLow, models.PriorityStandard},
		{models.UrgencyUpcoming, models.ImpactHigh, models.PriorityImportant},
		{models.UrgencyUpcoming, models.ImpactModerate, models.PriorityStandard},
		{models.UrgencyUpcoming, models.ImpactLow, models.PriorityOptional},
		{models.UrgencyFuture, models.ImpactHigh, models.PriorityStandard},
		{models.UrgencyFuture, models.ImpactModerate, models.PriorityOptional},
		{models.UrgencyFuture, models.ImpactLow, models.PriorityOptional},
	}
	for _, tc := range cases {
		if got := PriorityFor(tc.urgency, tc.impact); got != tc.want {
			t.Errorf("(%s, %s) -> %s, want %s", tc.urgency, tc.impact, got, tc.want)
		}
	}
}

func TestOpportunityScore(t *testing.T) {
	cases := []struct {
		name      string
		costDelta float64
		riskDelta float64
		urgency   models.Urgency
		component models.Component
		want      float64
	}{
		// Capped cost and clamped risk, immediate engine: full score.
		{"maximum", -2_000_000, 2.0, models.UrgencyImmediate, engineComponent, 120},
		{"no movement", 0, 0, models.UrgencyFuture, axleComponent, 0},
		// 0.5*0.7 cost component, upcoming premium: 0.35*0.6*1.1*100.
		{"partial savings", -500_000, 0, models.UrgencyUpcoming, premiumComponent, 23.1},
		// Risk reduction only, future standard part: 0.3*0.3*100.
		{"risk only", 0, 1.0, models.UrgencyFuture, axleComponent, 9},
		// Negative risk deltas clamp to zero, never subtract.
		{"risk regression ignored", -1_000_000, -0.4, models.UrgencyImmediate, axleComponent, 70},
	}
	for _, tc := range cases {
		got := OpportunityScore(tc.costDelta, tc.riskDelta, tc.urgency, tc.component)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: score = %f, want %f", tc.name, got, tc.want)
		}
	}
}
