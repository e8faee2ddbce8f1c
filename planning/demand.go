package planning

import (
	"math"
	"sort"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
)

// quarterAccum gathers one quarter's running totals while points stream in.
type quarterAccum struct {
	total    float64
	daily    []float64
	perModel map[string]float64
}

// AggregateDemand turns per-model demand forecasts into per-quarter
// required quantities for one component at one location.
//
// Points dated before horizonStart are discarded. For each calendar
// quarter the per-model contributions and a rounded total are
// accumulated, then safety stock is computed as
//
//	Z * sigma(daily demand in quarter) * sqrt(avg supplier lead time)
//
// with the sample standard deviation, so a quarter with at most one
// point contributes zero safety stock. The result is sorted by quarter.
func AggregateDemand(seriesByModel map[string][]models.ForecastPoint, avgLeadTimeDays float64, horizonStart time.Time, year int) []models.QuarterlyDemand {
	accums := map[int]*quarterAccum{}
	for modelId, series := range seriesByModel {
		for _, pt := range series {
			if pt.Date.Before(horizonStart) || pt.Date.Year() != year {
				continue
			}
			q := utils.QuarterOf(pt.Date)
			acc := accums[q]
			if acc == nil {
				acc = &quarterAccum{perModel: map[string]float64{}}
				accums[q] = acc
			}
			acc.total += pt.Value
			acc.daily = append(acc.daily, pt.Value)
			acc.perModel[modelId] += pt.Value
		}
	}

	leadTerm := math.Sqrt(avgLeadTimeDays)
	out := make([]models.QuarterlyDemand, 0, len(accums))
	for q, acc := range accums {
		totalDemand := utils.RoundToInt(acc.total)
		safetyStock := 0
		if sigma := utils.SampleStdDev(acc.daily); sigma > 0 {
			safetyStock = utils.CeilToInt(config.ServiceLevelZ * sigma * leadTerm)
		}
		qd := models.QuarterlyDemand{
			Quarter:       q,
			Year:          year,
			TotalDemand:   totalDemand,
			SafetyStock:   safetyStock,
			TotalRequired: utils.RoundToInt(float64(totalDemand) + float64(safetyStock)),
		}
		for modelId, units := range acc.perModel {
			share := 0.0
			if acc.total > 0 {
				share = units / acc.total
			}
			qd.Contributions = append(qd.Contributions, models.ModelContribution{
				ModelId: modelId,
				Units:   units,
				Share:   share,
			})
		}
		sort.Slice(qd.Contributions, func(i, j int) bool {
			return qd.Contributions[i].ModelId < qd.Contributions[j].ModelId
		})
		out = append(out, qd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quarter < out[j].Quarter })
	return out
}

// AverageLeadTime is the mean base lead time across the suppliers
// reachable from a location, defaulting when none are found.
func AverageLeadTime(location models.Location, suppliers []models.Supplier) float64 {
	var sum float64
	var n int
	for _, s := range suppliers {
		if location.SupplierIds.Contains(s.ID) {
			sum += float64(s.BaseLeadTimeDays)
			n++
		}
	}
	if n == 0 {
		return config.DefaultLeadTimeDays
	}
	return sum / float64(n)
}
