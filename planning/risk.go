package planning

// AllocationRisk measures supply exposure for a split: the Herfindahl
// concentration of the percentages scaled by the component's baseline
// failure rate. A single-supplier split of a failure-prone component is
// the worst case; an even split of a reliable one the best.
func AllocationRisk(split map[string]int, failureRate float64) float64 {
	var herfindahl float64
	for _, pct := range split {
		f := float64(pct) / 100
		herfindahl += f * f
	}
	return herfindahl * failureRate
}

// RiskDelta is the improvement moving from the current split to the
// recommended one, scaled by 1000 to a comparable magnitude with the
// prioritization thresholds. Positive means the recommendation reduces
// risk.
func RiskDelta(currentRisk, recommendedRisk float64) float64 {
	return (currentRisk - recommendedRisk) * 1000
}
