package models

import "gorm.io/gorm"

// MigrateAll creates/updates every table this service owns.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&Location{},
		&Component{},
		&Supplier{},
		&TractorModel{},
		&DemandForecast{},
		&QualityForecast{},
		&HistoricalReport{},
		&AllocationStrategy{},
		&QuarterlyCard{},
	)
}
