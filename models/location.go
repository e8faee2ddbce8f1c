package models

import (
	"context"
	"errors"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/utils"
	"gorm.io/gorm"
)

// Location is static reference data: a sales/stocking region, the
// suppliers that can serve it, and per-model demand-preference
// multipliers used by the synthetic forecast seeding. The pipeline
// never mutates locations.
type Location struct {
	ID               string     `gorm:"primaryKey;size:50" json:"id" validate:"required"`
	Name             string     `gorm:"size:100;not null" json:"name" validate:"required"`
	SupplierIds      StringList `gorm:"type:json" json:"supplier_ids"`
	ModelPreferences FloatMap   `gorm:"type:json" json:"model_preferences"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func GetLocation(ctx context.Context, id string) (*Location, error) {
	var location Location
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &location, nil
}
