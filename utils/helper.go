package utils

import (
	"math"
	"time"
)

// QuarterOf returns the calendar quarter (1-4) of a date.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// RoundToInt rounds half away from zero.
func RoundToInt(v float64) int {
	return int(math.Round(v))
}

func CeilToInt(v float64) int {
	return int(math.Ceil(v))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev is the n-1 standard deviation. Fewer than two points
// carry no variance information, so the result is 0.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
