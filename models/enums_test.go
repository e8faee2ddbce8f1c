package models

import "testing"

func TestEnumScanRoundTrip(t *testing.T) {
	var u Urgency
	if err := u.Scan([]byte("immediate")); err != nil {
		t.Fatal(err)
	}
	if u != UrgencyImmediate {
		t.Errorf("urgency = %s, want immediate", u)
	}

	var i ImpactLevel
	if err := i.Scan("moderate"); err != nil {
		t.Fatal(err)
	}
	if i != ImpactModerate {
		t.Errorf("impact = %s, want moderate", i)
	}

	var p Priority
	if err := p.Scan("critical"); err != nil {
		t.Fatal(err)
	}
	if v, err := p.Value(); err != nil || v != "critical" {
		t.Errorf("priority value = %v (%v), want critical", v, err)
	}
}

func TestEnumRejectsUnknownValues(t *testing.T) {
	var u Urgency
	if err := u.Scan("someday"); err == nil {
		t.Error("expected scan of unknown urgency to fail")
	}
	if _, err := Urgency("whenever").Value(); err == nil {
		t.Error("expected value of unknown urgency to fail")
	}
	var p Priority
	if err := p.Scan(42); err == nil {
		t.Error("expected scan of non-string to fail")
	}
}

func TestAllocationReasonValid(t *testing.T) {
	for _, r := range []AllocationReason{ReasonQuality, ReasonCost, ReasonDiversity, ReasonSafety, ReasonQ2Cost} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if AllocationReason("vibes").Valid() {
		t.Error("unknown reason should be invalid")
	}
}
