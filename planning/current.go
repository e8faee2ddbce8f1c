package planning

import (
	"fmt"
	"sort"

	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
	"github.com/shopspring/decimal"
)

// CurrentStrategy is the status-quo baseline for one
// (location, component): present inventory, how purchases are split
// across suppliers today, and what each planning quarter would cost if
// nothing changed. Derived once per run from historical reports and
// used only for comparison.
type CurrentStrategy struct {
	LocationId  string
	ComponentId string
	Inventory   int
	// Split maps supplier id -> percentage of the current buy (sums to
	// 100 when any history exists).
	Split        map[string]int
	QuarterUnits map[int]int
	QuarterCosts map[int]decimal.Decimal
}

// DeriveCurrentStrategy snapshots the baseline from historical purchase
// reports. With no history for the pair, the baseline is all-zero: the
// pair is effectively a new buy and every recommended unit is a delta.
func DeriveCurrentStrategy(component models.Component, location models.Location, reports []models.HistoricalReport, suppliers []models.Supplier, quarters []int) *CurrentStrategy {
	cs := &CurrentStrategy{
		LocationId:   location.ID,
		ComponentId:  component.ID,
		Split:        map[string]int{},
		QuarterUnits: map[int]int{},
		QuarterCosts: map[int]decimal.Decimal{},
	}
	for _, q := range quarters {
		cs.QuarterCosts[q] = decimal.Zero
	}

	var relevant []models.HistoricalReport
	for _, r := range reports {
		if r.ComponentId == component.ID {
			relevant = append(relevant, r)
		}
	}
	if len(relevant) == 0 {
		return cs
	}

	unitsBySupplier := map[string]int{}
	totalUnits := 0
	quartersSeen := map[string]struct{}{}
	for _, r := range relevant {
		unitsBySupplier[r.SupplierId] += r.Units
		totalUnits += r.Units
		key := fmt.Sprintf("%d-Q%d", r.ReportDate.Year(), utils.QuarterOf(r.ReportDate))
		quartersSeen[key] = struct{}{}
	}

	// Inventory snapshot: what arrived on the latest report date.
	latest := relevant[0].ReportDate
	for _, r := range relevant {
		if r.ReportDate.After(latest) {
			latest = r.ReportDate
		}
	}
	for _, r := range relevant {
		if r.ReportDate.Equal(latest) {
			cs.Inventory += r.Units
		}
	}

	cs.Split = percentSplit(unitsBySupplier, totalUnits)

	// Status-quo projection: the historical average quarterly buy,
	// priced at today's supplier prices under the current split.
	perQuarter := 0
	if n := len(quartersSeen); n > 0 {
		perQuarter = utils.RoundToInt(float64(totalUnits) / float64(n))
	}
	prices := componentPrices(component.ID, suppliers)
	for _, q := range quarters {
		cs.QuarterUnits[q] = perQuarter
		cost := decimal.Zero
		for supplierId, pct := range cs.Split {
			price, ok := prices[supplierId]
			if !ok {
				continue
			}
			supplierUnits := utils.RoundToInt(float64(perQuarter) * float64(pct) / 100)
			cost = cost.Add(price.Mul(decimal.NewFromInt(int64(supplierUnits))))
		}
		cs.QuarterCosts[q] = cost
	}
	return cs
}

// percentSplit converts unit counts into integer percentages that sum
// to exactly 100, residual to the largest holder.
func percentSplit(unitsBySupplier map[string]int, totalUnits int) map[string]int {
	split := map[string]int{}
	if totalUnits <= 0 {
		return split
	}
	type share struct {
		supplierId string
		units      int
	}
	shares := make([]share, 0, len(unitsBySupplier))
	for id, units := range unitsBySupplier {
		shares = append(shares, share{id, units})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].units != shares[j].units {
			return shares[i].units > shares[j].units
		}
		return shares[i].supplierId < shares[j].supplierId
	})
	sum := 0
	for _, s := range shares {
		pct := utils.RoundToInt(float64(s.units) / float64(totalUnits) * 100)
		split[s.supplierId] = pct
		sum += pct
	}
	if len(shares) > 0 && sum != 100 {
		split[shares[0].supplierId] += 100 - sum
	}
	return split
}
