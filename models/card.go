package models

import (
	"context"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/shopspring/decimal"
)

// QuarterlyCard is the terminal unit of pipeline output: one renderable
// recommendation per (location, component, quarter, year). Urgency,
// impact, priority and opportunity score summarize both planning
// quarters, so a pair's Q1 and Q2 cards always agree on them. Cards are
// immutable once written; user view state (accept/snooze/ignore) lives
// client-side, not here.
type QuarterlyCard struct {
	ID               int             `gorm:"primary_key" json:"id"`
	LocationId       string          `gorm:"size:50;not null;uniqueIndex:idx_card_key,priority:1" json:"location_id"`
	ComponentId      string          `gorm:"size:50;not null;uniqueIndex:idx_card_key,priority:2" json:"component_id"`
	Quarter          int             `gorm:"not null;uniqueIndex:idx_card_key,priority:3" json:"quarter"`
	Year             int             `gorm:"not null;uniqueIndex:idx_card_key,priority:4" json:"year"`
	CurrentUnits     int             `gorm:"not null;default:0" json:"current_units"`
	CurrentCost      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"current_cost"`
	RecommendedUnits int             `gorm:"not null;default:0" json:"recommended_units"`
	RecommendedCost  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"recommended_cost"`
	UnitDelta        int             `gorm:"not null;default:0" json:"unit_delta"`
	CostDelta        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"cost_delta"`
	Urgency          Urgency         `gorm:"type:enum('immediate','upcoming','future');not null" json:"urgency"`
	ImpactLevel      ImpactLevel     `gorm:"type:enum('low','moderate','high');not null" json:"impact_level"`
	Priority         Priority        `gorm:"type:enum('critical','important','standard','optional');not null" json:"priority"`
	OpportunityScore float64         `gorm:"type:decimal(10,2);not null;default:0" json:"opportunity_score"`
	Strategy         JSONColumn      `gorm:"type:json" json:"strategy"`
	RunId            string          `gorm:"size:36;not null" json:"run_id"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func ListCards(ctx context.Context) ([]QuarterlyCard, error) {
	var cards []QuarterlyCard
	db := config.GetDB()
	err := db.WithContext(ctx).
		Order("opportunity_score DESC, location_id, component_id, quarter").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}
