package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/shopspring/decimal"
)

// StrategySchemaVersion tags every persisted strategy payload so the
// reasoning blob can evolve without ambiguity about what a stored row
// contains.
const StrategySchemaVersion = 1

// ModelContribution is one tractor model's share of a quarter's demand
// for a component.
type ModelContribution struct {
	ModelId string  `json:"model_id"`
	Units   float64 `json:"units"`
	Share   float64 `json:"share"`
}

// QuarterlyDemand is the demand aggregator's output for one
// (location, component, quarter). Created fresh each run, read-only
// downstream. TotalRequired is always round(TotalDemand + SafetyStock).
type QuarterlyDemand struct {
	Quarter       int                 `json:"quarter"`
	Year          int                 `json:"year"`
	TotalDemand   int                 `json:"total_demand"`
	SafetyStock   int                 `json:"safety_stock"`
	TotalRequired int                 `json:"total_required"`
	Contributions []ModelContribution `json:"contributions"`
}

// QuarterQty is a supplier's materialized slice of one quarter:
// allocated units and their cost at the supplier's unit price.
type QuarterQty struct {
	Quarter int             `json:"quarter"`
	Year    int             `json:"year"`
	Units   int             `json:"units"`
	Cost    decimal.Decimal `json:"cost"`
}

// SupplierAllocation is one supplier's share of a component's purchases
// at a location. Percentages across a (component, location) always sum
// to 100 after finalization.
type SupplierAllocation struct {
	SupplierId   string           `json:"supplier_id"`
	SupplierName string           `json:"supplier_name"`
	Percentage   int              `json:"percentage"`
	QualityScore float64          `json:"quality_score"`
	CostScore    float64          `json:"cost_score"`
	TotalScore   float64          `json:"total_score"`
	Reason       AllocationReason `json:"reason"`
	Quantities   []QuarterQty     `json:"quantities,omitempty"`
}

// StrategyPayload is the versioned reasoning blob persisted with each
// strategy and, quarter-filtered, with each card. The reasoning strings
// are generated once and frozen; nothing downstream re-derives them.
type StrategyPayload struct {
	SchemaVersion    int                  `json:"schema_version"`
	LocationId       string               `json:"location_id"`
	ComponentId      string               `json:"component_id"`
	CurrentInventory int                  `json:"current_inventory"`
	Demand           []QuarterlyDemand    `json:"demand"`
	Allocations      []SupplierAllocation `json:"allocations"`
	Recommendation   string               `json:"recommendation"`
	QuantityWhy      string               `json:"quantity_why"`
	AllocationWhy    string               `json:"allocation_why"`
	RiskWhy          string               `json:"risk_why"`
}

// FilterQuarter returns a copy narrowed to a single quarter: the demand
// rows and every supplier's quantity breakdown keep only the matching
// quarter. Reasoning strings and scores are pair-level and unchanged.
func (p StrategyPayload) FilterQuarter(quarter, year int) StrategyPayload {
	out := p
	out.Demand = nil
	for _, d := range p.Demand {
		if d.Quarter == quarter && d.Year == year {
			out.Demand = append(out.Demand, d)
		}
	}
	out.Allocations = make([]SupplierAllocation, len(p.Allocations))
	for i, a := range p.Allocations {
		fa := a
		fa.Quantities = nil
		for _, q := range a.Quantities {
			if q.Quarter == quarter && q.Year == year {
				fa.Quantities = append(fa.Quantities, q)
			}
		}
		out.Allocations[i] = fa
	}
	return out
}

func (p StrategyPayload) Encode() (JSONColumn, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return JSONColumn(b), nil
}

func DecodeStrategyPayload(raw []byte) (StrategyPayload, error) {
	var p StrategyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return StrategyPayload{}, err
	}
	if p.SchemaVersion != StrategySchemaVersion {
		return StrategyPayload{}, fmt.Errorf("unsupported strategy schema version %d", p.SchemaVersion)
	}
	return p, nil
}

// AllocationStrategy is the persisted per-(location, component)
// recommendation with its full reasoning payload.
type AllocationStrategy struct {
	ID          int        `gorm:"primary_key" json:"id"`
	LocationId  string     `gorm:"size:50;not null;uniqueIndex:idx_strategy_key,priority:1" json:"location_id"`
	ComponentId string     `gorm:"size:50;not null;uniqueIndex:idx_strategy_key,priority:2" json:"component_id"`
	RunId       string     `gorm:"size:36;not null" json:"run_id"`
	Payload     JSONColumn `gorm:"type:json" json:"payload"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ListAllocationStrategies(ctx context.Context) ([]AllocationStrategy, error) {
	var strategies []AllocationStrategy
	db := config.GetDB()
	err := db.WithContext(ctx).
		Order("location_id, component_id").
		Find(&strategies).Error
	if err != nil {
		return nil, err
	}
	return strategies, nil
}
