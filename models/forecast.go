package models

import (
	"context"
	"errors"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/utils"
	"gorm.io/gorm"
)

// DemandForecast holds one externally produced demand series for a
// (location, tractor model) pair. The series is opaque JSON at this
// boundary; decoding happens in the reader so malformed rows degrade to
// an empty series instead of failing the whole run.
type DemandForecast struct {
	ID         int        `gorm:"primary_key" json:"id"`
	LocationId string     `gorm:"size:50;not null;uniqueIndex:idx_demand_forecast_key,priority:1" json:"location_id"`
	ModelId    string     `gorm:"size:50;not null;uniqueIndex:idx_demand_forecast_key,priority:2" json:"model_id"`
	Series     JSONColumn `gorm:"type:json" json:"series"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// QualityForecast holds one externally produced 0-100 quality series
// per supplier, averaged into the supplier quality score.
type QualityForecast struct {
	ID         int        `gorm:"primary_key" json:"id"`
	SupplierId string     `gorm:"size:50;not null;uniqueIndex" json:"supplier_id"`
	Series     JSONColumn `gorm:"type:json" json:"series"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetDemandForecast(ctx context.Context, locationId, modelId string) (*DemandForecast, error) {
	var forecast DemandForecast
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("location_id = ? AND model_id = ?", locationId, modelId).
		First(&forecast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNoForecast
		}
		return nil, err
	}
	return &forecast, nil
}

func ListDemandForecastsByLocation(ctx context.Context, locationId string) ([]DemandForecast, error) {
	var forecasts []DemandForecast
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("location_id = ?", locationId).
		Order("model_id").
		Find(&forecasts).Error
	if err != nil {
		return nil, err
	}
	return forecasts, nil
}
