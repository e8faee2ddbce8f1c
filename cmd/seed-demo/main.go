package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
)

// Seeds deterministic demo reference data, random-walk forecasts and a
// year of historical purchase reports. The pipeline treats all of this
// as externally produced input; regenerating with the same --seed gives
// byte-identical series.
func main() {
	seed := flag.Int64("seed", 42, "RNG seed for the synthetic series")
	wipe := flag.Bool("wipe", false, "Delete existing reference/forecast/history rows first")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if err := models.MigrateAll(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	if *wipe {
		for _, model := range []interface{}{
			&models.HistoricalReport{}, &models.DemandForecast{}, &models.QualityForecast{},
			&models.TractorModel{}, &models.Supplier{}, &models.Component{}, &models.Location{},
		} {
			if err := db.Where("1 = 1").Delete(model).Error; err != nil {
				fmt.Fprintf(os.Stderr, "wipe: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if err := seedAll(db, rng); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("demo data seeded")
}

func seedAll(db *gorm.DB, rng *rand.Rand) error {
	locations := []models.Location{
		{
			ID:          "heartland",
			Name:        "Heartland Region",
			SupplierIds: models.StringList{"apex-machining", "great-lakes-forge", "prairie-parts"},
			ModelPreferences: models.FloatMap{
				"TB-100": 1.2, "TB-300": 1.0, "TB-500X": 0.7,
			},
		},
		{
			ID:          "highplains",
			Name:        "High Plains Region",
			SupplierIds: models.StringList{"apex-machining", "prairie-parts", "summit-industrial"},
			ModelPreferences: models.FloatMap{
				"TB-100": 0.8, "TB-300": 1.1, "TB-500X": 1.3,
			},
		},
		{
			ID:          "delta",
			Name:        "Delta Region",
			SupplierIds: models.StringList{"great-lakes-forge", "summit-industrial"},
			ModelPreferences: models.FloatMap{
				"TB-100": 1.0, "TB-300": 0.9, "TB-500X": 1.0,
			},
		},
	}

	components := []models.Component{
		{ID: "ENGINE-A", Name: "ENGINE-A Diesel Core", FailureRate: 0.031},
		{ID: "ENGINE-B", Name: "ENGINE-B Turbo Core", FailureRate: 0.024},
		{ID: "PREMIUM-CAB", Name: "PREMIUM-CAB Operator Cabin", FailureRate: 0.008},
		{ID: "HYDRAULIC-PUMP", Name: "Hydraulic Pump Assembly", FailureRate: 0.042},
		{ID: "TRANSMISSION-STD", Name: "Standard Transmission", FailureRate: 0.015},
		{ID: "AXLE-HD", Name: "Heavy Duty Axle", FailureRate: 0.011},
	}

	suppliers := []models.Supplier{
		{
			ID: "apex-machining", Name: "Apex Machining Co", BaseLeadTimeDays: 6,
			ComponentPrices: prices(map[string]float64{
				"ENGINE-A": 8200, "ENGINE-B": 9100, "HYDRAULIC-PUMP": 1450,
				"TRANSMISSION-STD": 3900, "AXLE-HD": 980,
			}),
		},
		{
			ID: "great-lakes-forge", Name: "Great Lakes Forge", BaseLeadTimeDays: 9,
			ComponentPrices: prices(map[string]float64{
				"ENGINE-A": 7850, "PREMIUM-CAB": 12400, "TRANSMISSION-STD": 4100,
				"AXLE-HD": 940,
			}),
		},
		{
			ID: "prairie-parts", Name: "Prairie Parts Supply", BaseLeadTimeDays: 5,
			ComponentPrices: prices(map[string]float64{
				"ENGINE-A": 8600, "ENGINE-B": 8800, "PREMIUM-CAB": 11900,
				"HYDRAULIC-PUMP": 1320, "AXLE-HD": 1010,
			}),
		},
		{
			ID: "summit-industrial", Name: "Summit Industrial", BaseLeadTimeDays: 8,
			ComponentPrices: prices(map[string]float64{
				"ENGINE-B": 9400, "PREMIUM-CAB": 12100, "HYDRAULIC-PUMP": 1510,
				"TRANSMISSION-STD": 3750,
			}),
		},
	}

	tractorModels := []models.TractorModel{
		{
			ID: "TB-100", Name: "TractorBeam 100", MarketSensitivity: 0.8, InflationSensitivity: 0.4,
			ComponentIds: models.StringList{"ENGINE-A", "TRANSMISSION-STD", "AXLE-HD", "HYDRAULIC-PUMP"},
		},
		{
			ID: "TB-300", Name: "TractorBeam 300", MarketSensitivity: 1.0, InflationSensitivity: 0.6,
			ComponentIds: models.StringList{"ENGINE-A", "ENGINE-B", "TRANSMISSION-STD", "AXLE-HD"},
		},
		{
			ID: "TB-500X", Name: "TractorBeam 500X", MarketSensitivity: 1.4, InflationSensitivity: 0.9,
			ComponentIds: models.StringList{"ENGINE-B", "PREMIUM-CAB", "HYDRAULIC-PUMP", "AXLE-HD"},
		},
	}

	for _, loc := range locations {
		if err := utils.ValidateStruct(loc); err != nil {
			return fmt.Errorf("location %s: %w", loc.ID, err)
		}
	}
	for _, comp := range components {
		if err := utils.ValidateStruct(comp); err != nil {
			return fmt.Errorf("component %s: %w", comp.ID, err)
		}
	}
	for _, sup := range suppliers {
		if err := utils.ValidateStruct(sup); err != nil {
			return fmt.Errorf("supplier %s: %w", sup.ID, err)
		}
	}
	for _, tm := range tractorModels {
		if err := utils.ValidateStruct(tm); err != nil {
			return fmt.Errorf("tractor model %s: %w", tm.ID, err)
		}
	}

	upsert := clause.OnConflict{UpdateAll: true}
	if err := db.Clauses(upsert).Create(&locations).Error; err != nil {
		return err
	}
	if err := db.Clauses(upsert).Create(&components).Error; err != nil {
		return err
	}
	if err := db.Clauses(upsert).Create(&suppliers).Error; err != nil {
		return err
	}
	if err := db.Clauses(upsert).Create(&tractorModels).Error; err != nil {
		return err
	}

	if err := seedDemandForecasts(db, rng, locations, tractorModels); err != nil {
		return err
	}
	if err := seedQualityForecasts(db, rng, suppliers); err != nil {
		return err
	}
	return seedHistoricalReports(db, rng, locations, components, suppliers)
}

// seedDemandForecasts emits a daily random walk from Dec 2024 through
// Jun 2025; the pre-2025 tail exercises the aggregator's horizon cut.
func seedDemandForecasts(db *gorm.DB, rng *rand.Rand, locations []models.Location, tractorModels []models.TractorModel) error {
	start := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for _, loc := range locations {
		for _, tm := range tractorModels {
			preference := loc.ModelPreferences[tm.ID]
			if preference == 0 {
				preference = 1.0
			}
			level := 40.0 * preference * (0.8 + 0.4*rng.Float64())

			var pts []models.ForecastPoint
			for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
				level += (rng.Float64() - 0.5) * 4 * tm.MarketSensitivity
				if level < 5 {
					level = 5
				}
				value := level + (rng.Float64()-0.5)*6
				pts = append(pts, models.ForecastPoint{
					Date:  d,
					Value: float64(int(value*10)) / 10,
					Lower: float64(int(value*0.85*10)) / 10,
					Upper: float64(int(value*1.15*10)) / 10,
				})
			}
			raw, err := json.Marshal(pts)
			if err != nil {
				return err
			}
			forecast := models.DemandForecast{
				LocationId: loc.ID,
				ModelId:    tm.ID,
				Series:     models.JSONColumn(raw),
			}
			err = db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "location_id"}, {Name: "model_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"series", "updated_at"}),
			}).Create(&forecast).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedQualityForecasts(db *gorm.DB, rng *rand.Rand, suppliers []models.Supplier) error {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for _, sup := range suppliers {
		base := 55 + rng.Float64()*35

		var pts []models.ForecastPoint
		for week := 0; week < 26; week++ {
			base += (rng.Float64() - 0.5) * 3
			if base < 30 {
				base = 30
			}
			if base > 98 {
				base = 98
			}
			pts = append(pts, models.ForecastPoint{
				Date:  start.AddDate(0, 0, week*7),
				Value: float64(int(base*10)) / 10,
			})
		}
		raw, err := json.Marshal(pts)
		if err != nil {
			return err
		}
		forecast := models.QualityForecast{
			SupplierId: sup.ID,
			Series:     models.JSONColumn(raw),
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"series", "updated_at"}),
		}).Create(&forecast).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// seedHistoricalReports writes monthly 2024 purchase records skewed
// toward each location's first reachable supplier, so the derived
// current strategy shows the concentration the pipeline diversifies.
func seedHistoricalReports(db *gorm.DB, rng *rand.Rand, locations []models.Location, components []models.Component, suppliers []models.Supplier) error {
	supplierById := map[string]models.Supplier{}
	for _, s := range suppliers {
		supplierById[s.ID] = s
	}

	var batch []models.HistoricalReport
	for _, loc := range locations {
		for _, comp := range components {
			for month := time.January; month <= time.December; month++ {
				date := time.Date(2024, month, 15, 0, 0, 0, 0, time.UTC)
				dominant := true
				for _, supplierId := range loc.SupplierIds {
					sup := supplierById[supplierId]
					price, sells := sup.PriceFor(comp.ID)
					if !sells {
						continue
					}
					units := 20 + rng.Intn(40)
					if !dominant {
						units = rng.Intn(12)
					}
					dominant = false
					if units == 0 {
						continue
					}
					batch = append(batch, models.HistoricalReport{
						LocationId:  loc.ID,
						ComponentId: comp.ID,
						SupplierId:  supplierId,
						ReportDate:  date,
						Units:       units,
						Cost:        price.Mul(decimal.NewFromInt(int64(units))),
					})
				}
			}
		}
	}
	if len(batch) == 0 {
		return nil
	}
	return db.CreateInBatches(batch, 200).Error
}

func prices(m map[string]float64) models.PriceMap {
	out := models.PriceMap{}
	for componentId, price := range m {
		out[componentId] = decimal.NewFromFloat(price)
	}
	return out
}
