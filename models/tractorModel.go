package models

import (
	"context"
	"time"

	"github.com/flowstate/tractor-beam/config"
)

// TractorModel is static reference data: a sellable model, the
// components one unit consumes, and sensitivity coefficients the
// synthetic forecast generator feeds on.
type TractorModel struct {
	ID                   string     `gorm:"primaryKey;size:50" json:"id" validate:"required"`
	Name                 string     `gorm:"size:100;not null" json:"name" validate:"required"`
	ComponentIds         StringList `gorm:"type:json" json:"component_ids"`
	MarketSensitivity    float64    `gorm:"type:decimal(6,4);default:0" json:"market_sensitivity"`
	InflationSensitivity float64    `gorm:"type:decimal(6,4);default:0" json:"inflation_sensitivity"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *TractorModel) UsesComponent(componentId string) bool {
	return m.ComponentIds.Contains(componentId)
}

func ListTractorModels(ctx context.Context) ([]TractorModel, error) {
	var tractorModels []TractorModel
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").Find(&tractorModels).Error; err != nil {
		return nil, err
	}
	return tractorModels, nil
}
