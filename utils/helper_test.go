package utils

import (
	"math"
	"testing"
	"time"
)

func TestQuarterOf(t *testing.T) {
	cases := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1}, {time.March, 1},
		{time.April, 2}, {time.June, 2},
		{time.July, 3}, {time.September, 3},
		{time.October, 4}, {time.December, 4},
	}
	for _, tc := range cases {
		d := time.Date(2025, tc.month, 15, 0, 0, 0, 0, time.UTC)
		if got := QuarterOf(d); got != tc.want {
			t.Errorf("QuarterOf(%s) = %d, want %d", tc.month, got, tc.want)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := RoundToInt(2.5); got != 3 {
		t.Errorf("RoundToInt(2.5) = %d, want 3 (half away from zero)", got)
	}
	if got := RoundToInt(-2.5); got != -3 {
		t.Errorf("RoundToInt(-2.5) = %d, want -3", got)
	}
	if got := CeilToInt(24.001); got != 25 {
		t.Errorf("CeilToInt(24.001) = %d, want 25", got)
	}
	if got := CeilToInt(25); got != 25 {
		t.Errorf("CeilToInt(25) = %d, want 25", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %f, want 1", got)
	}
	if got := Clamp(-0.2, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.2, 0, 1) = %f, want 0", got)
	}
	if got := Clamp(0.4, 0, 1); got != 0.4 {
		t.Errorf("Clamp(0.4, 0, 1) = %f, want 0.4", got)
	}
}

func TestSampleStdDev(t *testing.T) {
	// Variance of [100,105,95,110,100] is 130/4.
	got := SampleStdDev([]float64{100, 105, 95, 110, 100})
	want := math.Sqrt(32.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("stddev = %f, want %f", got, want)
	}
	if SampleStdDev([]float64{42}) != 0 {
		t.Error("single point must carry zero variance")
	}
	if SampleStdDev(nil) != 0 {
		t.Error("empty series must carry zero variance")
	}
	if SampleStdDev([]float64{7, 7, 7}) != 0 {
		t.Error("constant series must carry zero variance")
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("mean = %f, want 2", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("mean of empty = %f, want 0", got)
	}
}
