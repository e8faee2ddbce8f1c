package reports

import (
	"context"

	"github.com/flowstate/tractor-beam/config"
	"github.com/shopspring/decimal"
)

const (
	cacheKeyPrioritySummary  = "report:priority-summary"
	cacheKeyTopOpportunities = "report:top-opportunities"
)

type PrioritySummaryResponse struct {
	Priority            string          `json:"priority"`
	CardCount           int             `json:"card_count"`
	TotalCostDelta      decimal.Decimal `json:"total_cost_delta"`
	AvgOpportunityScore float64         `json:"avg_opportunity_score"`
}

// GetPrioritySummaryReport rolls the card set up by priority tier.
func GetPrioritySummaryReport(ctx context.Context) ([]*PrioritySummaryResponse, error) {
	var cached []*PrioritySummaryResponse
	if found, _ := cacheGet(cacheKeyPrioritySummary, &cached); found {
		return cached, nil
	}

	sql := `
SELECT
    priority,
    COUNT(id) AS card_count,
    SUM(cost_delta) AS total_cost_delta,
    AVG(opportunity_score) AS avg_opportunity_score
FROM
    quarterly_cards
GROUP BY
    priority
ORDER BY
    FIELD(priority, 'critical', 'important', 'standard', 'optional');
`

	var records []*PrioritySummaryResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}

	cacheSet(cacheKeyPrioritySummary, records)
	return records, nil
}

type TopOpportunityResponse struct {
	LocationId       string          `json:"location_id"`
	ComponentId      string          `json:"component_id"`
	Quarter          int             `json:"quarter"`
	Year             int             `json:"year"`
	Priority         string          `json:"priority"`
	Urgency          string          `json:"urgency"`
	CostDelta        decimal.Decimal `json:"cost_delta"`
	OpportunityScore float64         `json:"opportunity_score"`
}

// GetTopOpportunitiesReport lists the highest-scoring cards first.
func GetTopOpportunitiesReport(ctx context.Context, limit int) ([]*TopOpportunityResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	var cached []*TopOpportunityResponse
	useCache := limit == 10
	if useCache {
		if found, _ := cacheGet(cacheKeyTopOpportunities, &cached); found {
			return cached, nil
		}
	}

	sql := `
SELECT
    location_id,
    component_id,
    quarter,
    year,
    priority,
    urgency,
    cost_delta,
    opportunity_score
FROM
    quarterly_cards
ORDER BY
    opportunity_score DESC, location_id, component_id, quarter
LIMIT ?;
`

	var records []*TopOpportunityResponse
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, limit).Scan(&records).Error; err != nil {
		return nil, err
	}

	if useCache {
		cacheSet(cacheKeyTopOpportunities, records)
	}
	return records, nil
}
