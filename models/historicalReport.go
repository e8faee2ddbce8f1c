package models

import (
	"context"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/shopspring/decimal"
)

// HistoricalReport is one past purchasing record: units bought from a
// supplier for a component at a location, with its cost. The status-quo
// baseline (current strategy) is derived from these rows.
type HistoricalReport struct {
	ID          int             `gorm:"primary_key" json:"id"`
	LocationId  string          `gorm:"size:50;not null;index:idx_report_loc_comp,priority:1" json:"location_id"`
	ComponentId string          `gorm:"size:50;not null;index:idx_report_loc_comp,priority:2" json:"component_id"`
	SupplierId  string          `gorm:"size:50;not null" json:"supplier_id"`
	ReportDate  time.Time       `gorm:"not null;index" json:"report_date"`
	Units       int             `gorm:"not null;default:0" json:"units"`
	Cost        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"cost"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func ListHistoricalReportsByLocation(ctx context.Context, locationId string) ([]HistoricalReport, error) {
	var reports []HistoricalReport
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("location_id = ?", locationId).
		Order("report_date").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
