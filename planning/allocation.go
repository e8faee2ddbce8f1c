package planning

import (
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
	"github.com/shopspring/decimal"
)

// BuildAllocations runs the full allocation stage for one component at
// one location: scoring, base split, the ordered diversification rule
// chain, then (when demand is supplied) per-quarter quantity and cost
// materialization.
func BuildAllocations(component models.Component, location models.Location, suppliers []models.Supplier, qualityBySupplier map[string][]models.ForecastPoint, demand []models.QuarterlyDemand) ([]models.SupplierAllocation, error) {
	allocations, err := ScoreSuppliers(component, location, suppliers, qualityBySupplier)
	if err != nil {
		return nil, err
	}

	prices := componentPrices(component.ID, suppliers)
	rc := RuleContext{Demand: demand, Prices: prices}
	allocations = ApplyRules(allocations, rc, DiversificationRules())

	if len(demand) > 0 {
		materializeQuantities(allocations, demand, prices)
	}
	return allocations, nil
}

// materializeQuantities converts percentages into per-quarter units and
// costs. When a safety-tagged supplier exists, the base demand and the
// safety stock are allocated separately: everyone splits the base
// demand by percentage and the safety supplier absorbs the whole
// safety-stock buffer on top.
func materializeQuantities(allocations []models.SupplierAllocation, demand []models.QuarterlyDemand, prices map[string]decimal.Decimal) {
	safetyIdx := -1
	for i := range allocations {
		if allocations[i].Reason == models.ReasonSafety {
			safetyIdx = i
			break
		}
	}

	for _, qd := range demand {
		for i := range allocations {
			pct := float64(allocations[i].Percentage) / 100
			var units int
			if safetyIdx < 0 {
				units = utils.RoundToInt(pct * float64(qd.TotalRequired))
			} else {
				units = utils.RoundToInt(pct * float64(qd.TotalDemand))
				if i == safetyIdx {
					units += qd.SafetyStock
				}
			}
			price := prices[allocations[i].SupplierId]
			allocations[i].Quantities = append(allocations[i].Quantities, models.QuarterQty{
				Quarter: qd.Quarter,
				Year:    qd.Year,
				Units:   units,
				Cost:    price.Mul(decimal.NewFromInt(int64(units))),
			})
		}
	}
}

func componentPrices(componentId string, suppliers []models.Supplier) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal)
	for _, s := range suppliers {
		if price, ok := s.PriceFor(componentId); ok {
			prices[s.ID] = price
		}
	}
	return prices
}
