package planning

import (
	"github.com/flowstate/tractor-beam/models"
)

// BuildCards flattens one pair's strategy into exactly one card per
// planning quarter. Every card carries that quarter's slice of the
// unit/cost data plus the pair-level classification, which is identical
// across the pair's cards, and a quarter-filtered copy of the payload.
func BuildCards(payload models.StrategyPayload, impact PairImpact, quarters []int, year int, runId string) ([]models.QuarterlyCard, error) {
	cards := make([]models.QuarterlyCard, 0, len(quarters))
	for _, q := range quarters {
		filtered, err := payload.FilterQuarter(q, year).Encode()
		if err != nil {
			return nil, err
		}
		cards = append(cards, models.QuarterlyCard{
			LocationId:       payload.LocationId,
			ComponentId:      payload.ComponentId,
			Quarter:          q,
			Year:             year,
			CurrentUnits:     impact.CurrentUnits[q],
			CurrentCost:      impact.CurrentCosts[q],
			RecommendedUnits: impact.RecommendedUnits[q],
			RecommendedCost:  impact.RecommendedCosts[q],
			UnitDelta:        impact.UnitDeltas[q],
			CostDelta:        impact.CostDeltas[q],
			Urgency:          impact.Urgency,
			ImpactLevel:      impact.ImpactLevel,
			Priority:         impact.Priority,
			OpportunityScore: impact.OpportunityScore,
			Strategy:         filtered,
			RunId:            runId,
		})
	}
	return cards, nil
}
