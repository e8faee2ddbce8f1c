package planning

import (
	"sort"

	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
)

const (
	qualityWeight = 0.7
	costWeight    = 0.3

	// Applied when a supplier has no quality series to average.
	defaultQualityScore = 50.0
)

// ScoreSuppliers scores every supplier eligible for a component at a
// location (serves the location AND sells the component) and returns
// base allocations ordered by total score descending, percentages
// proportional to score share.
//
// Quality is the average of the supplier's forecasted quality series,
// clamped to 0-100. Cost is the price-per-unit linearly normalized
// across ALL suppliers offering the component: cheapest 100, priciest
// 0, and 100 for everyone when prices are equal.
func ScoreSuppliers(component models.Component, location models.Location, suppliers []models.Supplier, qualityBySupplier map[string][]models.ForecastPoint) ([]models.SupplierAllocation, error) {
	minPrice, maxPrice, havePrices := priceRange(component.ID, suppliers)

	var allocations []models.SupplierAllocation
	for _, s := range suppliers {
		if !location.SupplierIds.Contains(s.ID) {
			continue
		}
		price, sells := s.PriceFor(component.ID)
		if !sells {
			continue
		}

		quality := defaultQualityScore
		if series := qualityBySupplier[s.ID]; len(series) > 0 {
			values := make([]float64, len(series))
			for i, pt := range series {
				values[i] = pt.Value
			}
			quality = utils.Clamp(utils.Mean(values), 0, 100)
		}

		cost := 100.0
		if havePrices && maxPrice > minPrice {
			cost = (maxPrice - price.InexactFloat64()) / (maxPrice - minPrice) * 100
		}

		allocations = append(allocations, models.SupplierAllocation{
			SupplierId:   s.ID,
			SupplierName: s.Name,
			QualityScore: quality,
			CostScore:    cost,
			TotalScore:   qualityWeight*quality + costWeight*cost,
			Reason:       models.ReasonQuality,
		})
	}
	if len(allocations) == 0 {
		return nil, utils.ErrNoEligibleSuppliers
	}

	sort.Slice(allocations, func(i, j int) bool {
		if allocations[i].TotalScore != allocations[j].TotalScore {
			return allocations[i].TotalScore > allocations[j].TotalScore
		}
		return allocations[i].SupplierId < allocations[j].SupplierId
	})

	var scoreSum float64
	for _, a := range allocations {
		scoreSum += a.TotalScore
	}
	for i := range allocations {
		if scoreSum > 0 {
			allocations[i].Percentage = utils.RoundToInt(allocations[i].TotalScore / scoreSum * 100)
		}
	}
	return allocations, nil
}

// priceRange scans every supplier offering the component, not just the
// ones reachable from the location, so cost scores are comparable
// across locations.
func priceRange(componentId string, suppliers []models.Supplier) (min, max float64, ok bool) {
	first := true
	for _, s := range suppliers {
		price, sells := s.PriceFor(componentId)
		if !sells {
			continue
		}
		p := price.InexactFloat64()
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max, !first
}
